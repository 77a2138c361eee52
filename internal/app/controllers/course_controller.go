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

// CourseController serves the public course catalog and certificate
// verification.
type CourseController struct {
	courseService      *services.CourseService
	certificateService *services.CertificateService
	logger             zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, certificateService *services.CertificateService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService:      courseService,
		certificateService: certificateService,
		logger:             logger,
	}
}

// Browse lists active courses
// @Summary Browse the course catalog
// @Tags courses
// @Produce json
// @Param category query string false "Filter by category"
// @Param search query string false "Search in course titles"
// @Param sort query string false "Sort order" Enums(popular, rating, newest)
// @Success 200 {object} dto.APIResponse{data=[]dto.CatalogCourse}
// @Router /courses [get]
func (c *CourseController) Browse(ctx *gin.Context) {
	var req dto.BrowseCoursesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	courses, err := c.courseService.Browse(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// Categories lists the distinct course categories
// @Summary List course categories
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Router /courses/categories [get]
func (c *CourseController) Categories(ctx *gin.Context) {
	categories, err := c.courseService.Categories(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(categories))
}

// GetCourse returns one course
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// VerifyCertificate looks up a certificate by verification code
// @Summary Verify a certificate
// @Description Public lookup of a certificate by its verification code.
// @Tags certificates
// @Produce json
// @Param code path string true "Verification code"
// @Success 200 {object} dto.APIResponse{data=dto.VerifyCertificateResponse}
// @Failure 404 {object} dto.ErrorResponse "Certificate not found"
// @Router /certificates/{code}/verify [get]
func (c *CourseController) VerifyCertificate(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Verification code is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.certificateService.Verify(ctx.Request.Context(), code)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result))
}
