package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/app/services"
	"github.com/trainly/trainly/internal/middleware"
	"github.com/trainly/trainly/internal/pkg/helpers"
)

// AdminController serves the admin-scoped endpoints.
type AdminController struct {
	userService   *services.UserService
	courseService *services.CourseService
	reportService *services.ReportService
	logger        zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(
	userService *services.UserService,
	courseService *services.CourseService,
	reportService *services.ReportService,
	logger zerolog.Logger,
) *AdminController {
	return &AdminController{
		userService:   userService,
		courseService: courseService,
		reportService: reportService,
		logger:        logger,
	}
}

// Dashboard returns the system-wide dashboard
// @Summary Admin dashboard
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AdminDashboard}
// @Router /admin/dashboard [get]
// @Security Bearer
func (c *AdminController) Dashboard(ctx *gin.Context) {
	dashboard, err := c.reportService.AdminDashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dashboard))
}

// Users lists accounts, paginated
// @Summary List users
// @Tags admin
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.AdminUserListResponse}
// @Router /admin/users [get]
// @Security Bearer
func (c *AdminController) Users(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	users, err := c.userService.ListUsers(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(users))
}

// RecentRegistrations lists accounts created in the last 30 days
// @Summary Recent registrations
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminUser}
// @Router /admin/users/recent [get]
// @Security Bearer
func (c *AdminController) RecentRegistrations(ctx *gin.Context) {
	users, err := c.userService.RecentRegistrations(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(users))
}

// Students lists student accounts with enrollment counts
// @Summary List students
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminStudent}
// @Router /admin/students [get]
// @Security Bearer
func (c *AdminController) Students(ctx *gin.Context) {
	students, err := c.userService.ListStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// Instructors lists faculty accounts with course counts
// @Summary List instructors
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminInstructor}
// @Router /admin/instructors [get]
// @Security Bearer
func (c *AdminController) Instructors(ctx *gin.Context) {
	instructors, err := c.userService.ListInstructors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(instructors))
}

// Courses lists every course for management
// @Summary List all courses
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.AdminCourse}
// @Router /admin/courses [get]
// @Security Bearer
func (c *AdminController) Courses(ctx *gin.Context) {
	courses, err := c.courseService.AllCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// SetUserStatus toggles an account between active and inactive
// @Summary Change account status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id}/status [put]
// @Security Bearer
func (c *AdminController) SetUserStatus(ctx *gin.Context) {
	subject, ok := middleware.GetSubject(ctx)
	if !ok {
		respondUnauthorized(ctx)
		return
	}

	targetID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	if err := c.userService.SetUserStatus(ctx.Request.Context(), subject.UserID, targetID, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Status updated"}))
}

// UserGrowth returns monthly registration counts
// @Summary Monthly user growth
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.MonthlyCount}
// @Router /admin/reports/user-growth [get]
// @Security Bearer
func (c *AdminController) UserGrowth(ctx *gin.Context) {
	points, err := c.reportService.UserGrowth(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(points))
}

// MonthlyRevenue returns monthly enrollment revenue
// @Summary Monthly revenue
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.MonthlyAmount}
// @Router /admin/reports/revenue [get]
// @Security Bearer
func (c *AdminController) MonthlyRevenue(ctx *gin.Context) {
	points, err := c.reportService.MonthlyRevenue(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(points))
}
