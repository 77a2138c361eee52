package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/app/services"
	"github.com/trainly/trainly/internal/middleware"
)

// StudentController serves the student-scoped endpoints. Every handler
// acts on the student id resolved from the authenticated subject.
type StudentController struct {
	enrollmentService  *services.EnrollmentService
	certificateService *services.CertificateService
	reportService      *services.ReportService
	logger             zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	enrollmentService *services.EnrollmentService,
	certificateService *services.CertificateService,
	reportService *services.ReportService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		enrollmentService:  enrollmentService,
		certificateService: certificateService,
		reportService:      reportService,
		logger:             logger,
	}
}

// Dashboard returns the student dashboard
// @Summary Student dashboard
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboard}
// @Router /student/dashboard [get]
// @Security Bearer
func (c *StudentController) Dashboard(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	dashboard, err := c.reportService.StudentDashboard(ctx.Request.Context(), subject.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard))
}

// Enroll enrolls the student in a course
// @Summary Enroll in a course
// @Tags student
// @Produce json
// @Param id path int true "Course ID"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or course not active"
// @Router /student/courses/{id}/enroll [post]
// @Security Bearer
func (c *StudentController) Enroll(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.enrollmentService.Enroll(ctx.Request.Context(), subject.StudentID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// ActiveCourses lists the student's in-progress courses
// @Summary List active courses
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ActiveCourse}
// @Router /student/courses/active [get]
// @Security Bearer
func (c *StudentController) ActiveCourses(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	courses, err := c.enrollmentService.ActiveCourses(ctx.Request.Context(), subject.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// CompletedCourses lists the student's certified courses
// @Summary List completed courses
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CompletedCourse}
// @Router /student/courses/completed [get]
// @Security Bearer
func (c *StudentController) CompletedCourses(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	courses, err := c.enrollmentService.CompletedCourses(ctx.Request.Context(), subject.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// Certificates lists the student's certificates
// @Summary List own certificates
// @Tags student
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CertificateResponse}
// @Router /student/certificates [get]
// @Security Bearer
func (c *StudentController) Certificates(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	certs, err := c.certificateService.StudentCertificates(ctx.Request.Context(), subject.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(certs))
}

// RateCourse records a rating on a completed course
// @Summary Rate a completed course
// @Tags student
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.RateCourseRequest true "Rating"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /student/courses/{id}/rating [put]
// @Security Bearer
func (c *StudentController) RateCourse(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.RateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	if err := c.enrollmentService.RateCourse(ctx.Request.Context(), subject.StudentID, courseID, req.Rating); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Rating saved"}))
}

func respondUnauthorized(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
