package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/pkg/helpers"
)

const (
	continueLearningLimit = 3
	recentEnrollmentLimit = 10
)

// ReportStore is the aggregate query surface behind the dashboards.
type ReportStore interface {
	StudentMetrics(ctx context.Context, studentID int64) (enrolled, completed int64, avgGrade, totalHours float64, err error)
	ContinueLearning(ctx context.Context, studentID int64, limit uint64) ([]dto.CourseProgress, error)
	StudentPerformance(ctx context.Context, studentID int64) ([]dto.CoursePerformance, error)
	InstructorMetrics(ctx context.Context, facultyID int64) (total, active, students int64, avgRating float64, err error)
	EnrollmentDistribution(ctx context.Context, facultyID int64) ([]dto.CourseEnrollmentCount, error)
	CourseAnalytics(ctx context.Context, facultyID int64) ([]dto.CourseAnalytics, error)
	EnrolledStudents(ctx context.Context, facultyID int64) ([]dto.EnrolledStudent, error)
	AdminMetrics(ctx context.Context) (activeUsers, activeCourses, enrollments int64, revenue float64, err error)
	CoursesByCategory(ctx context.Context) ([]dto.CategoryCount, error)
	RecentEnrollments(ctx context.Context, limit uint64) ([]dto.RecentEnrollment, error)
	UserGrowth(ctx context.Context) ([]dto.MonthlyCount, error)
	MonthlyRevenue(ctx context.Context) ([]dto.MonthlyAmount, error)
}

// InstructorCourseLister feeds the instructor dashboard's course table.
type InstructorCourseLister interface {
	ListByInstructor(ctx context.Context, facultyID int64) ([]dto.InstructorCourse, error)
}

// ReportService assembles the role dashboards. Percentages coming out of
// the analytics table are clamped to [0, 100] before leaving the service.
type ReportService struct {
	reports ReportStore
	courses InstructorCourseLister
	logger  zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reports ReportStore, courses InstructorCourseLister, logger zerolog.Logger) *ReportService {
	return &ReportService{reports: reports, courses: courses, logger: logger}
}

// StudentDashboard builds the student's metric row and chart feeds.
func (s *ReportService) StudentDashboard(ctx context.Context, studentID int64) (*dto.StudentDashboard, error) {
	enrolled, completed, avgGrade, totalHours, err := s.reports.StudentMetrics(ctx, studentID)
	if err != nil {
		return nil, err
	}

	progress, err := s.reports.ContinueLearning(ctx, studentID, continueLearningLimit)
	if err != nil {
		return nil, err
	}
	for i := range progress {
		progress[i].CompletionRate = helpers.ClampPercent(progress[i].CompletionRate)
		progress[i].AvgGrade = helpers.ClampPercent(progress[i].AvgGrade)
	}

	perf, err := s.reports.StudentPerformance(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for i := range perf {
		perf[i].CompletionRate = helpers.ClampPercent(perf[i].CompletionRate)
		perf[i].AvgGrade = helpers.ClampPercent(perf[i].AvgGrade)
		perf[i].TimeSpentHours = helpers.NonNegative(perf[i].TimeSpentHours)
	}

	return &dto.StudentDashboard{
		EnrolledCount:    enrolled,
		CompletedCount:   completed,
		AvgGrade:         helpers.ClampPercent(avgGrade),
		TotalStudyHours:  helpers.NonNegative(totalHours),
		ContinueLearning: progress,
		Performance:      perf,
	}, nil
}

// InstructorDashboard builds the instructor's metric row and chart feeds.
func (s *ReportService) InstructorDashboard(ctx context.Context, facultyID int64) (*dto.InstructorDashboard, error) {
	total, active, students, avgRating, err := s.reports.InstructorMetrics(ctx, facultyID)
	if err != nil {
		return nil, err
	}

	courses, err := s.courses.ListByInstructor(ctx, facultyID)
	if err != nil {
		return nil, err
	}

	dist, err := s.reports.EnrollmentDistribution(ctx, facultyID)
	if err != nil {
		return nil, err
	}

	return &dto.InstructorDashboard{
		TotalCourses:  total,
		ActiveCourses: active,
		TotalStudents: students,
		AvgRating:     helpers.NonNegative(avgRating),
		Courses:       courses,
		Distribution:  dist,
	}, nil
}

// InstructorAnalytics lists per-course aggregates for the instructor.
func (s *ReportService) InstructorAnalytics(ctx context.Context, facultyID int64) ([]dto.CourseAnalytics, error) {
	analytics, err := s.reports.CourseAnalytics(ctx, facultyID)
	if err != nil {
		return nil, err
	}
	for i := range analytics {
		analytics[i].AvgGrade = helpers.ClampPercent(analytics[i].AvgGrade)
		analytics[i].AvgCompletion = helpers.ClampPercent(analytics[i].AvgCompletion)
	}
	return analytics, nil
}

// InstructorRoster lists enrolled students across the instructor's courses.
func (s *ReportService) InstructorRoster(ctx context.Context, facultyID int64) ([]dto.EnrolledStudent, error) {
	roster, err := s.reports.EnrolledStudents(ctx, facultyID)
	if err != nil {
		return nil, err
	}
	for i := range roster {
		roster[i].CompletionRate = helpers.ClampPercent(roster[i].CompletionRate)
		roster[i].AvgGrade = helpers.ClampPercent(roster[i].AvgGrade)
	}
	return roster, nil
}

// AdminDashboard builds the system-wide metric row and chart feeds.
func (s *ReportService) AdminDashboard(ctx context.Context) (*dto.AdminDashboard, error) {
	activeUsers, activeCourses, enrollments, revenue, err := s.reports.AdminMetrics(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.reports.CoursesByCategory(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.reports.RecentEnrollments(ctx, recentEnrollmentLimit)
	if err != nil {
		return nil, err
	}

	return &dto.AdminDashboard{
		ActiveUsers:       activeUsers,
		ActiveCourses:     activeCourses,
		TotalEnrollments:  enrollments,
		TotalRevenue:      helpers.NonNegative(revenue),
		CourseCategories:  categories,
		RecentEnrollments: recent,
	}, nil
}

// UserGrowth returns monthly registration counts for the admin charts.
func (s *ReportService) UserGrowth(ctx context.Context) ([]dto.MonthlyCount, error) {
	return s.reports.UserGrowth(ctx)
}

// MonthlyRevenue returns monthly enrollment revenue for the admin charts.
func (s *ReportService) MonthlyRevenue(ctx context.Context) ([]dto.MonthlyAmount, error) {
	return s.reports.MonthlyRevenue(ctx)
}
