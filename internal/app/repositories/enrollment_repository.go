package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/pkg/apperrors"
	"github.com/trainly/trainly/internal/pkg/dberrors"
	"github.com/trainly/trainly/internal/pkg/helpers"
	"github.com/trainly/trainly/internal/pkg/logger"
)

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Exists reports whether the student is already enrolled in the course.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error checking enrollment existence")
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}

// CreateTx inserts an enrollment inside an existing transaction. The
// (student_id, course_id) unique constraint is the authority on duplicates;
// concurrent inserts lose here, not at a prior existence check.
func (r *EnrollmentRepository) CreateTx(ctx context.Context, tx pgx.Tx, enrollment *models.Enrollment) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id", "enroll_code", "enrolled_at", "certified").
		Values(enrollment.StudentID, enrollment.CourseID, enrollment.EnrollCode,
			enrollment.EnrolledAt, enrollment.Certified).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		// Any unique violation on this insert is the (student_id, course_id)
		// primary key.
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyEnrolled
		}
		logger.Error().Err(err).Int64("studentID", enrollment.StudentID).Int64("courseID", enrollment.CourseID).Msg("Error creating enrollment")
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// CreateAnalyticsTx seeds the analytics row for a fresh enrollment inside
// the same transaction.
func (r *EnrollmentRepository) CreateAnalyticsTx(ctx context.Context, tx pgx.Tx, studentID, courseID int64) error {
	sql, args, err := r.sb.Insert("analytics").
		Columns("student_id", "course_id", "completion_rate", "avg_grade", "time_spent_hours", "quiz_participation").
		Values(studentID, courseID, 0, 0, 0, 0).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create analytics query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error creating analytics row")
		return fmt.Errorf("error creating analytics row: %w", err)
	}

	return nil
}

// ListActive lists a student's in-progress courses with live analytics.
func (r *EnrollmentRepository) ListActive(ctx context.Context, studentID int64) ([]dto.ActiveCourse, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.title", "c.category", "c.duration_hours",
		"u.first_name || ' ' || u.last_name AS instructor_name",
		"e.enrolled_at", "COALESCE(a.completion_rate, 0)",
		"COALESCE(a.avg_grade, 0)", "COALESCE(a.time_spent_hours, 0)").
		From("enrollments e").
		Join("courses c ON e.course_id = c.id").
		Join("faculty f ON c.instructor_id = f.id").
		Join("users u ON f.user_id = u.id").
		LeftJoin("analytics a ON a.student_id = e.student_id AND a.course_id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID, "e.certified": false}).
		OrderBy("e.enrolled_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build active courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing active courses query")
		return nil, fmt.Errorf("error querying active courses: %w", err)
	}
	defer rows.Close()

	var courses []dto.ActiveCourse
	for rows.Next() {
		var c dto.ActiveCourse
		err := rows.Scan(&c.CourseID, &c.Title, &c.Category, &c.DurationHours,
			&c.InstructorName, &c.EnrolledAt, &c.CompletionRate, &c.AvgGrade, &c.TimeSpentHours)
		if err != nil {
			return nil, fmt.Errorf("error scanning active course row: %w", err)
		}
		c.CompletionRate = helpers.ClampPercent(c.CompletionRate)
		c.AvgGrade = helpers.ClampPercent(c.AvgGrade)
		c.TimeSpentHours = helpers.NonNegative(c.TimeSpentHours)
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

// ListCompleted lists a student's certified courses.
func (r *EnrollmentRepository) ListCompleted(ctx context.Context, studentID int64) ([]dto.CompletedCourse, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.title", "c.category",
		"u.first_name || ' ' || u.last_name AS instructor_name",
		"COALESCE(a.avg_grade, 0)", "e.completed_at", "e.rating",
		"cert.verification_code").
		From("enrollments e").
		Join("courses c ON e.course_id = c.id").
		Join("faculty f ON c.instructor_id = f.id").
		Join("users u ON f.user_id = u.id").
		LeftJoin("analytics a ON a.student_id = e.student_id AND a.course_id = e.course_id").
		LeftJoin("certificates cert ON cert.student_id = e.student_id AND cert.course_id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID, "e.certified": true}).
		OrderBy("e.completed_at DESC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build completed courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing completed courses query")
		return nil, fmt.Errorf("error querying completed courses: %w", err)
	}
	defer rows.Close()

	var courses []dto.CompletedCourse
	for rows.Next() {
		var c dto.CompletedCourse
		err := rows.Scan(&c.CourseID, &c.Title, &c.Category, &c.InstructorName,
			&c.AvgGrade, &c.CompletedAt, &c.Rating, &c.VerificationCode)
		if err != nil {
			return nil, fmt.Errorf("error scanning completed course row: %w", err)
		}
		c.AvgGrade = helpers.ClampPercent(c.AvgGrade)
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

// GetEnrollment retrieves a single enrollment row.
func (r *EnrollmentRepository) GetEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	var e models.Enrollment
	sql, args, err := r.sb.Select(
		"student_id", "course_id", "enroll_code", "enrolled_at",
		"certified", "completed_at", "rating").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&e.StudentID, &e.CourseID, &e.EnrollCode, &e.EnrolledAt,
		&e.Certified, &e.CompletedAt, &e.Rating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error scanning enrollment row")
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &e, nil
}

// SetRating records a student's rating for a completed course and refreshes
// the course's average inside one transaction.
func (r *EnrollmentRepository) SetRating(ctx context.Context, tx pgx.Tx, studentID, courseID int64, rating int) error {
	tag, err := tx.Exec(ctx,
		`UPDATE enrollments SET rating = $1 WHERE student_id = $2 AND course_id = $3 AND certified = true`,
		rating, studentID, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error updating enrollment rating")
		return fmt.Errorf("error updating rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	_, err = tx.Exec(ctx,
		`UPDATE courses SET avg_rating = (
			SELECT COALESCE(AVG(rating), 0) FROM enrollments
			WHERE course_id = $1 AND rating IS NOT NULL
		) WHERE id = $1`, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error refreshing course average rating")
		return fmt.Errorf("error refreshing course rating: %w", err)
	}

	return nil
}

// MarkCertifiedTx flags the enrollment as certified inside an existing
// transaction. Returns ErrEnrollmentNotFound when the student is not
// enrolled in the course.
func (r *EnrollmentRepository) MarkCertifiedTx(ctx context.Context, tx pgx.Tx, studentID, courseID int64) error {
	tag, err := tx.Exec(ctx,
		`UPDATE enrollments SET certified = true, completed_at = NOW()
		 WHERE student_id = $1 AND course_id = $2 AND certified = false`,
		studentID, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error marking enrollment certified")
		return fmt.Errorf("error marking enrollment certified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var enrolled bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
			studentID, courseID).Scan(&enrolled); err != nil {
			return fmt.Errorf("error checking enrollment: %w", err)
		}
		if !enrolled {
			return apperrors.ErrEnrollmentNotFound
		}
		return apperrors.ErrCertificateExists
	}
	return nil
}
