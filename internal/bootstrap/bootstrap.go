package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/trainly/trainly/internal/app/auth"
	appControllers "github.com/trainly/trainly/internal/app/controllers"
	appMigrations "github.com/trainly/trainly/internal/app/migrations"
	appRepos "github.com/trainly/trainly/internal/app/repositories"
	appRoutes "github.com/trainly/trainly/internal/app/routes"
	appServices "github.com/trainly/trainly/internal/app/services"
	"github.com/trainly/trainly/internal/config"
	"github.com/trainly/trainly/internal/db"
	appMiddleware "github.com/trainly/trainly/internal/middleware"
	pkgAuth "github.com/trainly/trainly/internal/pkg/auth"
	"github.com/trainly/trainly/internal/pkg/helpers"
	"github.com/trainly/trainly/internal/pkg/logger"
	"github.com/trainly/trainly/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	UserService          *appServices.UserService
	CourseService        *appServices.CourseService
	EnrollmentService    *appServices.EnrollmentService
	CertificateService   *appServices.CertificateService
	ReportService        *appServices.ReportService
	AuthController       *appControllers.AuthController
	CourseController     *appControllers.CourseController
	StudentController    *appControllers.StudentController
	InstructorController *appControllers.InstructorController
	AdminController      *appControllers.AdminController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	ScopeService         *appAuth.ScopeService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default accounts.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Startup continues; missing demo accounts are not fatal.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	txRunner := db.PoolTxRunner(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.ScopeService = appAuth.NewScopeService(deps.Repos.ProfileRepository)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.SessionRepository,
		txRunner,
		deps.JWTService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.ProfileRepository, deps.Repos.SessionRepository, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		txRunner,
		lgr,
	)
	deps.CertificateService = appServices.NewCertificateService(
		deps.Repos.CertificateRepository,
		deps.Repos.EnrollmentRepository,
		deps.Repos.CourseRepository,
		txRunner,
		lgr,
	)
	deps.ReportService = appServices.NewReportService(deps.Repos.ReportRepository, deps.Repos.CourseRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.ScopeService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.UserService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.CertificateService, lgr)
	deps.StudentController = appControllers.NewStudentController(
		deps.EnrollmentService,
		deps.CertificateService,
		deps.ReportService,
		lgr,
	)
	deps.InstructorController = appControllers.NewInstructorController(
		deps.CourseService,
		deps.CertificateService,
		deps.ReportService,
		lgr,
	)
	deps.AdminController = appControllers.NewAdminController(
		deps.UserService,
		deps.CourseService,
		deps.ReportService,
		lgr,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CourseController,
		deps.StudentController,
		deps.InstructorController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
