package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/trainly/trainly/internal/app/controllers"
	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	studentController *controllers.StudentController,
	instructorController *controllers.InstructorController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.Browse)
		courses.GET("/categories", courseController.Categories)
		courses.GET("/:id", courseController.GetCourse)
	}

	// Certificate verification is public so third parties can check codes.
	v1.GET("/certificates/:code/verify", courseController.VerifyCertificate)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		withSubject := authenticated.Group("")
		withSubject.Use(authMiddleware.SubjectRequired())
		{
			withSubject.GET("/auth/profile", authController.Profile)

			student := withSubject.Group("/student")
			student.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				student.GET("/dashboard", studentController.Dashboard)
				student.GET("/courses/active", studentController.ActiveCourses)
				student.GET("/courses/completed", studentController.CompletedCourses)
				student.POST("/courses/:id/enroll", studentController.Enroll)
				student.PUT("/courses/:id/rating", studentController.RateCourse)
				student.GET("/certificates", studentController.Certificates)
			}

			instructor := withSubject.Group("/instructor")
			instructor.Use(authMiddleware.RoleRequired(models.RoleInstructor))
			{
				instructor.GET("/dashboard", instructorController.Dashboard)
				instructor.GET("/courses", instructorController.Courses)
				instructor.GET("/analytics", instructorController.Analytics)
				instructor.GET("/students", instructorController.Students)
				instructor.POST("/certificates", instructorController.IssueCertificate)
			}

			admin := withSubject.Group("/admin")
			admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				admin.GET("/dashboard", adminController.Dashboard)
				admin.GET("/users", adminController.Users)
				admin.GET("/users/recent", adminController.RecentRegistrations)
				admin.PUT("/users/:id/status", adminController.SetUserStatus)
				admin.GET("/students", adminController.Students)
				admin.GET("/instructors", adminController.Instructors)
				admin.GET("/courses", adminController.Courses)
				admin.GET("/reports/user-growth", adminController.UserGrowth)
				admin.GET("/reports/revenue", adminController.MonthlyRevenue)
			}
		}
	}
}
