package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/app/services"
	"github.com/trainly/trainly/internal/middleware"
)

// InstructorController serves the instructor-scoped endpoints. Course
// ownership is always checked against the resolved faculty id.
type InstructorController struct {
	courseService      *services.CourseService
	certificateService *services.CertificateService
	reportService      *services.ReportService
	logger             zerolog.Logger
}

// NewInstructorController creates a new InstructorController
func NewInstructorController(
	courseService *services.CourseService,
	certificateService *services.CertificateService,
	reportService *services.ReportService,
	logger zerolog.Logger,
) *InstructorController {
	return &InstructorController{
		courseService:      courseService,
		certificateService: certificateService,
		reportService:      reportService,
		logger:             logger,
	}
}

// Dashboard returns the instructor dashboard
// @Summary Instructor dashboard
// @Tags instructor
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.InstructorDashboard}
// @Router /instructor/dashboard [get]
// @Security Bearer
func (c *InstructorController) Dashboard(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	dashboard, err := c.reportService.InstructorDashboard(ctx.Request.Context(), subject.FacultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard))
}

// Courses lists the instructor's own courses
// @Summary List own courses
// @Tags instructor
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.InstructorCourse}
// @Router /instructor/courses [get]
// @Security Bearer
func (c *InstructorController) Courses(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	courses, err := c.courseService.InstructorCourses(ctx.Request.Context(), subject.FacultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// Analytics lists per-course aggregates for the instructor
// @Summary Course analytics
// @Tags instructor
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseAnalytics}
// @Router /instructor/analytics [get]
// @Security Bearer
func (c *InstructorController) Analytics(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	analytics, err := c.reportService.InstructorAnalytics(ctx.Request.Context(), subject.FacultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(analytics))
}

// Students lists the roster across the instructor's courses
// @Summary List enrolled students
// @Tags instructor
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrolledStudent}
// @Router /instructor/students [get]
// @Security Bearer
func (c *InstructorController) Students(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	roster, err := c.reportService.InstructorRoster(ctx.Request.Context(), subject.FacultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(roster))
}

// IssueCertificate marks an enrollment complete and issues the certificate
// @Summary Issue a certificate
// @Tags instructor
// @Accept json
// @Produce json
// @Param request body dto.IssueCertificateRequest true "Student and course"
// @Success 201 {object} dto.APIResponse{data=models.Certificate}
// @Failure 403 {object} dto.ErrorResponse "Course not owned by caller"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Certificate already issued"
// @Router /instructor/certificates [post]
// @Security Bearer
func (c *InstructorController) IssueCertificate(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	var req dto.IssueCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	cert, err := c.certificateService.Issue(ctx.Request.Context(), subject.FacultyID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(cert))
}
