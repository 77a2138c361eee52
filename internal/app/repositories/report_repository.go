package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/pkg/helpers"
	"github.com/trainly/trainly/internal/pkg/logger"
)

// ReportRepository runs the aggregate queries behind the role dashboards.
// Averaged and summed columns either go through COALESCE or are scanned
// into pointers so empty result sets produce zeros instead of NULLs.
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// StudentMetrics returns the student's headline numbers.
func (r *ReportRepository) StudentMetrics(ctx context.Context, studentID int64) (enrolled, completed int64, avgGrade, totalHours float64, err error) {
	var grade, hours *float64
	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE certified),
			(SELECT AVG(avg_grade) FROM analytics WHERE student_id = $1),
			(SELECT SUM(time_spent_hours) FROM analytics WHERE student_id = $1)
		FROM enrollments WHERE student_id = $1`, studentID).
		Scan(&enrolled, &completed, &grade, &hours)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying student metrics")
		return 0, 0, 0, 0, fmt.Errorf("error querying student metrics: %w", err)
	}
	return enrolled, completed, helpers.Float64OrZero(grade), helpers.Float64OrZero(hours), nil
}

// ContinueLearning lists the student's in-progress courses ordered by how
// close they are to completion.
func (r *ReportRepository) ContinueLearning(ctx context.Context, studentID int64, limit uint64) ([]dto.CourseProgress, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.title", "c.category",
		"COALESCE(a.completion_rate, 0)", "COALESCE(a.avg_grade, 0)").
		From("enrollments e").
		Join("courses c ON e.course_id = c.id").
		LeftJoin("analytics a ON a.student_id = e.student_id AND a.course_id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID, "e.certified": false}).
		OrderBy("COALESCE(a.completion_rate, 0) DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build continue learning query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing continue learning query")
		return nil, fmt.Errorf("error querying continue learning: %w", err)
	}
	defer rows.Close()

	var progress []dto.CourseProgress
	for rows.Next() {
		var p dto.CourseProgress
		if err := rows.Scan(&p.CourseID, &p.Title, &p.Category, &p.CompletionRate, &p.AvgGrade); err != nil {
			return nil, fmt.Errorf("error scanning progress row: %w", err)
		}
		progress = append(progress, p)
	}

	return progress, rows.Err()
}

// StudentPerformance lists per-course analytics rows for the student.
func (r *ReportRepository) StudentPerformance(ctx context.Context, studentID int64) ([]dto.CoursePerformance, error) {
	sql, args, err := r.sb.Select(
		"c.title",
		"COALESCE(a.completion_rate, 0)", "COALESCE(a.avg_grade, 0)",
		"COALESCE(a.time_spent_hours, 0)", "COALESCE(a.quiz_participation, 0)").
		From("analytics a").
		Join("courses c ON a.course_id = c.id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("c.title").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student performance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing student performance query")
		return nil, fmt.Errorf("error querying student performance: %w", err)
	}
	defer rows.Close()

	var perf []dto.CoursePerformance
	for rows.Next() {
		var p dto.CoursePerformance
		if err := rows.Scan(&p.Title, &p.CompletionRate, &p.AvgGrade, &p.TimeSpentHours, &p.QuizParticipation); err != nil {
			return nil, fmt.Errorf("error scanning performance row: %w", err)
		}
		perf = append(perf, p)
	}

	return perf, rows.Err()
}

// InstructorMetrics returns the instructor's headline numbers.
func (r *ReportRepository) InstructorMetrics(ctx context.Context, facultyID int64) (total, active, students int64, avgRating float64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $2),
			COALESCE((
				SELECT COUNT(DISTINCT e.student_id) FROM enrollments e
				JOIN courses c ON e.course_id = c.id
				WHERE c.instructor_id = $1
			), 0),
			COALESCE(AVG(avg_rating) FILTER (WHERE avg_rating > 0), 0)
		FROM courses WHERE instructor_id = $1`, facultyID, models.CourseActive).
		Scan(&total, &active, &students, &avgRating)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", facultyID).Msg("Error querying instructor metrics")
		return 0, 0, 0, 0, fmt.Errorf("error querying instructor metrics: %w", err)
	}
	return total, active, students, avgRating, nil
}

// EnrollmentDistribution counts enrollments per course for the instructor.
func (r *ReportRepository) EnrollmentDistribution(ctx context.Context, facultyID int64) ([]dto.CourseEnrollmentCount, error) {
	sql, args, err := r.sb.Select("c.title", "COUNT(e.student_id) AS enrollments").
		From("courses c").
		LeftJoin("enrollments e ON c.id = e.course_id").
		Where(squirrel.Eq{"c.instructor_id": facultyID}).
		GroupBy("c.id", "c.title").
		OrderBy("enrollments DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment distribution query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", facultyID).Msg("Error executing enrollment distribution query")
		return nil, fmt.Errorf("error querying enrollment distribution: %w", err)
	}
	defer rows.Close()

	var dist []dto.CourseEnrollmentCount
	for rows.Next() {
		var d dto.CourseEnrollmentCount
		if err := rows.Scan(&d.Title, &d.Enrollments); err != nil {
			return nil, fmt.Errorf("error scanning distribution row: %w", err)
		}
		dist = append(dist, d)
	}

	return dist, rows.Err()
}

// CourseAnalytics aggregates student analytics per course for the
// instructor's analytics page.
func (r *ReportRepository) CourseAnalytics(ctx context.Context, facultyID int64) ([]dto.CourseAnalytics, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.title",
		"COUNT(DISTINCT e.student_id) AS students",
		"COALESCE(AVG(a.avg_grade), 0)",
		"COALESCE(AVG(a.completion_rate), 0)").
		From("courses c").
		LeftJoin("enrollments e ON c.id = e.course_id").
		LeftJoin("analytics a ON a.course_id = c.id AND a.student_id = e.student_id").
		Where(squirrel.Eq{"c.instructor_id": facultyID}).
		GroupBy("c.id", "c.title").
		OrderBy("students DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course analytics query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", facultyID).Msg("Error executing course analytics query")
		return nil, fmt.Errorf("error querying course analytics: %w", err)
	}
	defer rows.Close()

	var analytics []dto.CourseAnalytics
	for rows.Next() {
		var a dto.CourseAnalytics
		if err := rows.Scan(&a.CourseID, &a.Title, &a.Students, &a.AvgGrade, &a.AvgCompletion); err != nil {
			return nil, fmt.Errorf("error scanning analytics row: %w", err)
		}
		analytics = append(analytics, a)
	}

	return analytics, rows.Err()
}

// EnrolledStudents lists the roster across all of the instructor's
// courses, newest enrollment first.
func (r *ReportRepository) EnrolledStudents(ctx context.Context, facultyID int64) ([]dto.EnrolledStudent, error) {
	sql, args, err := r.sb.Select(
		"s.id", "u.first_name", "u.last_name", "u.email", "c.title",
		"e.enrolled_at",
		"COALESCE(a.completion_rate, 0)", "COALESCE(a.avg_grade, 0)").
		From("enrollments e").
		Join("courses c ON e.course_id = c.id").
		Join("students s ON e.student_id = s.id").
		Join("users u ON s.user_id = u.id").
		LeftJoin("analytics a ON a.student_id = e.student_id AND a.course_id = e.course_id").
		Where(squirrel.Eq{"c.instructor_id": facultyID}).
		OrderBy("e.enrolled_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrolled students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", facultyID).Msg("Error executing enrolled students query")
		return nil, fmt.Errorf("error querying enrolled students: %w", err)
	}
	defer rows.Close()

	var roster []dto.EnrolledStudent
	for rows.Next() {
		var s dto.EnrolledStudent
		err := rows.Scan(&s.StudentID, &s.FirstName, &s.LastName, &s.Email,
			&s.CourseTitle, &s.EnrolledAt, &s.CompletionRate, &s.AvgGrade)
		if err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}
		roster = append(roster, s)
	}

	return roster, rows.Err()
}

// AdminMetrics returns the system-wide headline numbers.
func (r *ReportRepository) AdminMetrics(ctx context.Context) (activeUsers, activeCourses, enrollments int64, revenue float64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE status = $1),
			(SELECT COUNT(*) FROM courses WHERE status = $2),
			(SELECT COUNT(*) FROM enrollments),
			COALESCE((
				SELECT SUM(c.cost) FROM enrollments e
				JOIN courses c ON e.course_id = c.id
			), 0)`, models.UserActive, models.CourseActive).
		Scan(&activeUsers, &activeCourses, &enrollments, &revenue)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying admin metrics")
		return 0, 0, 0, 0, fmt.Errorf("error querying admin metrics: %w", err)
	}
	return activeUsers, activeCourses, enrollments, revenue, nil
}

// CoursesByCategory counts active courses per category.
func (r *ReportRepository) CoursesByCategory(ctx context.Context) ([]dto.CategoryCount, error) {
	sql, args, err := r.sb.Select("category", "COUNT(*)").
		From("courses").
		Where(squirrel.Eq{"status": models.CourseActive}).
		GroupBy("category").
		OrderBy("COUNT(*) DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build courses by category query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing courses by category query")
		return nil, fmt.Errorf("error querying courses by category: %w", err)
	}
	defer rows.Close()

	var counts []dto.CategoryCount
	for rows.Next() {
		var c dto.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning category count row: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// RecentEnrollments lists the latest enrollments across the system.
func (r *ReportRepository) RecentEnrollments(ctx context.Context, limit uint64) ([]dto.RecentEnrollment, error) {
	sql, args, err := r.sb.Select(
		"u.first_name", "u.last_name", "c.title", "e.enrolled_at").
		From("enrollments e").
		Join("students s ON e.student_id = s.id").
		Join("users u ON s.user_id = u.id").
		Join("courses c ON e.course_id = c.id").
		OrderBy("e.enrolled_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing recent enrollments query")
		return nil, fmt.Errorf("error querying recent enrollments: %w", err)
	}
	defer rows.Close()

	var recent []dto.RecentEnrollment
	for rows.Next() {
		var e dto.RecentEnrollment
		if err := rows.Scan(&e.FirstName, &e.LastName, &e.CourseTitle, &e.EnrolledAt); err != nil {
			return nil, fmt.Errorf("error scanning recent enrollment row: %w", err)
		}
		recent = append(recent, e)
	}

	return recent, rows.Err()
}

// UserGrowth counts user registrations per month over the last six
// months, oldest first.
func (r *ReportRepository) UserGrowth(ctx context.Context) ([]dto.MonthlyCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(created_at, 'YYYY-MM') AS month, COUNT(*)
		FROM users
		WHERE created_at >= date_trunc('month', NOW()) - INTERVAL '5 months'
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing user growth query")
		return nil, fmt.Errorf("error querying user growth: %w", err)
	}
	defer rows.Close()

	var points []dto.MonthlyCount
	for rows.Next() {
		var p dto.MonthlyCount
		if err := rows.Scan(&p.Month, &p.Count); err != nil {
			return nil, fmt.Errorf("error scanning user growth row: %w", err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}

// MonthlyRevenue sums course costs of enrollments per month, oldest first.
func (r *ReportRepository) MonthlyRevenue(ctx context.Context) ([]dto.MonthlyAmount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT to_char(e.enrolled_at, 'YYYY-MM') AS month, COALESCE(SUM(c.cost), 0)
		FROM enrollments e
		JOIN courses c ON e.course_id = c.id
		WHERE e.enrolled_at >= date_trunc('month', NOW()) - INTERVAL '5 months'
		GROUP BY month
		ORDER BY month`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing monthly revenue query")
		return nil, fmt.Errorf("error querying monthly revenue: %w", err)
	}
	defer rows.Close()

	var points []dto.MonthlyAmount
	for rows.Next() {
		var p dto.MonthlyAmount
		if err := rows.Scan(&p.Month, &p.Amount); err != nil {
			return nil, fmt.Errorf("error scanning monthly revenue row: %w", err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}
