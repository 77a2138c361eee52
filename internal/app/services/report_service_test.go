package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainly/trainly/internal/app/models/dto"
)

type fakeReportStore struct {
	enrolled, completed int64
	avgGrade, hours     float64
	progress            []dto.CourseProgress
	performance         []dto.CoursePerformance

	instructorTotal, instructorActive, instructorStudents int64
	instructorRating                                      float64
	distribution                                          []dto.CourseEnrollmentCount
	analytics                                             []dto.CourseAnalytics
	roster                                                []dto.EnrolledStudent

	activeUsers, activeCourses, totalEnrollments int64
	revenue                                      float64
	categories                                   []dto.CategoryCount
	recent                                       []dto.RecentEnrollment
	growth                                       []dto.MonthlyCount
	monthlyRevenue                               []dto.MonthlyAmount

	continueLimit uint64
	recentLimit   uint64
}

func (f *fakeReportStore) StudentMetrics(_ context.Context, _ int64) (int64, int64, float64, float64, error) {
	return f.enrolled, f.completed, f.avgGrade, f.hours, nil
}

func (f *fakeReportStore) ContinueLearning(_ context.Context, _ int64, limit uint64) ([]dto.CourseProgress, error) {
	f.continueLimit = limit
	return f.progress, nil
}

func (f *fakeReportStore) StudentPerformance(_ context.Context, _ int64) ([]dto.CoursePerformance, error) {
	return f.performance, nil
}

func (f *fakeReportStore) InstructorMetrics(_ context.Context, _ int64) (int64, int64, int64, float64, error) {
	return f.instructorTotal, f.instructorActive, f.instructorStudents, f.instructorRating, nil
}

func (f *fakeReportStore) EnrollmentDistribution(_ context.Context, _ int64) ([]dto.CourseEnrollmentCount, error) {
	return f.distribution, nil
}

func (f *fakeReportStore) CourseAnalytics(_ context.Context, _ int64) ([]dto.CourseAnalytics, error) {
	return f.analytics, nil
}

func (f *fakeReportStore) EnrolledStudents(_ context.Context, _ int64) ([]dto.EnrolledStudent, error) {
	return f.roster, nil
}

func (f *fakeReportStore) AdminMetrics(_ context.Context) (int64, int64, int64, float64, error) {
	return f.activeUsers, f.activeCourses, f.totalEnrollments, f.revenue, nil
}

func (f *fakeReportStore) CoursesByCategory(_ context.Context) ([]dto.CategoryCount, error) {
	return f.categories, nil
}

func (f *fakeReportStore) RecentEnrollments(_ context.Context, limit uint64) ([]dto.RecentEnrollment, error) {
	f.recentLimit = limit
	return f.recent, nil
}

func (f *fakeReportStore) UserGrowth(_ context.Context) ([]dto.MonthlyCount, error) {
	return f.growth, nil
}

func (f *fakeReportStore) MonthlyRevenue(_ context.Context) ([]dto.MonthlyAmount, error) {
	return f.monthlyRevenue, nil
}

type fakeInstructorCourseLister struct {
	courses []dto.InstructorCourse
}

func (f *fakeInstructorCourseLister) ListByInstructor(_ context.Context, _ int64) ([]dto.InstructorCourse, error) {
	return f.courses, nil
}

func TestStudentDashboard_ClampsPercentages(t *testing.T) {
	store := &fakeReportStore{
		enrolled:  4,
		completed: 1,
		avgGrade:  117.3, // dirty data from the analytics feed
		hours:     -2,
		progress: []dto.CourseProgress{
			{CourseID: 1, Title: "A", CompletionRate: 180, AvgGrade: -40},
			{CourseID: 2, Title: "B", CompletionRate: 55.5, AvgGrade: 73},
		},
		performance: []dto.CoursePerformance{
			{Title: "A", CompletionRate: 101, AvgGrade: 99, TimeSpentHours: -1},
		},
	}
	svc := NewReportService(store, &fakeInstructorCourseLister{}, zerolog.Nop())

	dash, err := svc.StudentDashboard(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, int64(4), dash.EnrolledCount)
	assert.Equal(t, int64(1), dash.CompletedCount)
	assert.Equal(t, 100.0, dash.AvgGrade)
	assert.Equal(t, 0.0, dash.TotalStudyHours)

	assert.Equal(t, 100.0, dash.ContinueLearning[0].CompletionRate)
	assert.Equal(t, 0.0, dash.ContinueLearning[0].AvgGrade)
	assert.Equal(t, 55.5, dash.ContinueLearning[1].CompletionRate)

	assert.Equal(t, 100.0, dash.Performance[0].CompletionRate)
	assert.Equal(t, 0.0, dash.Performance[0].TimeSpentHours)

	assert.Equal(t, uint64(3), store.continueLimit)
}

func TestStudentDashboard_EmptySet(t *testing.T) {
	svc := NewReportService(&fakeReportStore{}, &fakeInstructorCourseLister{}, zerolog.Nop())

	dash, err := svc.StudentDashboard(context.Background(), 3)
	require.NoError(t, err)

	assert.Zero(t, dash.EnrolledCount)
	assert.Zero(t, dash.AvgGrade)
	assert.Zero(t, dash.TotalStudyHours)
	assert.Empty(t, dash.ContinueLearning)
}

func TestInstructorDashboard(t *testing.T) {
	store := &fakeReportStore{
		instructorTotal:    5,
		instructorActive:   3,
		instructorStudents: 40,
		instructorRating:   4.2,
		distribution:       []dto.CourseEnrollmentCount{{Title: "A", Enrollments: 12}},
	}
	lister := &fakeInstructorCourseLister{courses: []dto.InstructorCourse{{CourseID: 1, Title: "A"}}}
	svc := NewReportService(store, lister, zerolog.Nop())

	dash, err := svc.InstructorDashboard(context.Background(), 200)
	require.NoError(t, err)

	assert.Equal(t, int64(5), dash.TotalCourses)
	assert.Equal(t, int64(3), dash.ActiveCourses)
	assert.Equal(t, int64(40), dash.TotalStudents)
	assert.Equal(t, 4.2, dash.AvgRating)
	assert.Len(t, dash.Courses, 1)
	assert.Len(t, dash.Distribution, 1)
}

func TestInstructorAnalytics_Clamps(t *testing.T) {
	store := &fakeReportStore{
		analytics: []dto.CourseAnalytics{{CourseID: 1, AvgGrade: 140, AvgCompletion: -10}},
	}
	svc := NewReportService(store, &fakeInstructorCourseLister{}, zerolog.Nop())

	analytics, err := svc.InstructorAnalytics(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, 100.0, analytics[0].AvgGrade)
	assert.Equal(t, 0.0, analytics[0].AvgCompletion)
}

func TestInstructorRoster_Clamps(t *testing.T) {
	store := &fakeReportStore{
		roster: []dto.EnrolledStudent{{StudentID: 3, CompletionRate: 250, AvgGrade: 85}},
	}
	svc := NewReportService(store, &fakeInstructorCourseLister{}, zerolog.Nop())

	roster, err := svc.InstructorRoster(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, 100.0, roster[0].CompletionRate)
	assert.Equal(t, 85.0, roster[0].AvgGrade)
}

func TestAdminDashboard(t *testing.T) {
	store := &fakeReportStore{
		activeUsers:      120,
		activeCourses:    14,
		totalEnrollments: 300,
		revenue:          -50, // refunds can push the sum negative; display floors at zero
		categories:       []dto.CategoryCount{{Category: "programming", Count: 6}},
		recent:           []dto.RecentEnrollment{{FirstName: "Sara", LastName: "Ali", CourseTitle: "A"}},
	}
	svc := NewReportService(store, &fakeInstructorCourseLister{}, zerolog.Nop())

	dash, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(120), dash.ActiveUsers)
	assert.Equal(t, 0.0, dash.TotalRevenue)
	assert.Len(t, dash.CourseCategories, 1)
	assert.Len(t, dash.RecentEnrollments, 1)
	assert.Equal(t, uint64(10), store.recentLimit)
}

func TestUserGrowthAndRevenue(t *testing.T) {
	store := &fakeReportStore{
		growth:         []dto.MonthlyCount{{Month: "2026-01", Count: 7}},
		monthlyRevenue: []dto.MonthlyAmount{{Month: "2026-01", Amount: 420.5}},
	}
	svc := NewReportService(store, &fakeInstructorCourseLister{}, zerolog.Nop())

	growth, err := svc.UserGrowth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-01", growth[0].Month)

	revenue, err := svc.MonthlyRevenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 420.5, revenue[0].Amount)
}
