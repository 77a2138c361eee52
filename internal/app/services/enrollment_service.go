package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/db"
	"github.com/trainly/trainly/internal/pkg/apperrors"
)

// EnrollmentStore is the enrollment persistence surface.
type EnrollmentStore interface {
	Exists(ctx context.Context, studentID, courseID int64) (bool, error)
	CreateTx(ctx context.Context, tx pgx.Tx, enrollment *models.Enrollment) error
	CreateAnalyticsTx(ctx context.Context, tx pgx.Tx, studentID, courseID int64) error
	ListActive(ctx context.Context, studentID int64) ([]dto.ActiveCourse, error)
	ListCompleted(ctx context.Context, studentID int64) ([]dto.CompletedCourse, error)
	GetEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	SetRating(ctx context.Context, tx pgx.Tx, studentID, courseID int64, rating int) error
}

// CourseGetter resolves a course for enrollment checks.
type CourseGetter interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
}

// EnrollmentService handles course enrollment for students.
type EnrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseGetter
	txRunner    db.TxRunner
	logger      zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollments EnrollmentStore, courses CourseGetter, txRunner db.TxRunner, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		txRunner:    txRunner,
		logger:      logger,
	}
}

// Enroll enrolls the student in an active course. The enrollment row and
// its analytics seed are written in one transaction; a concurrent
// duplicate loses on the unique constraint and maps to ErrAlreadyEnrolled
// either way.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int64) (*dto.EnrollResponse, error) {
	course, err := s.courses.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != models.CourseActive {
		return nil, apperrors.ErrCourseNotActive
	}

	exists, err := s.enrollments.Exists(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrollCode: fmt.Sprintf("ENR%d%d", courseID, studentID),
		EnrolledAt: time.Now(),
	}

	err = s.txRunner(ctx, func(tx pgx.Tx) error {
		if err := s.enrollments.CreateTx(ctx, tx, enrollment); err != nil {
			return err
		}
		return s.enrollments.CreateAnalyticsTx(ctx, tx, studentID, courseID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Student enrolled")

	return &dto.EnrollResponse{
		CourseID:   courseID,
		EnrollCode: enrollment.EnrollCode,
		EnrolledAt: enrollment.EnrolledAt,
	}, nil
}

// ActiveCourses lists the student's in-progress enrollments.
func (s *EnrollmentService) ActiveCourses(ctx context.Context, studentID int64) ([]dto.ActiveCourse, error) {
	return s.enrollments.ListActive(ctx, studentID)
}

// CompletedCourses lists the student's certified enrollments.
func (s *EnrollmentService) CompletedCourses(ctx context.Context, studentID int64) ([]dto.CompletedCourse, error) {
	return s.enrollments.ListCompleted(ctx, studentID)
}

// RateCourse records a 1-5 rating on a completed course and refreshes the
// course average.
func (s *EnrollmentService) RateCourse(ctx context.Context, studentID, courseID int64, rating int) error {
	if rating < 1 || rating > 5 {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}

	err := s.txRunner(ctx, func(tx pgx.Tx) error {
		return s.enrollments.SetRating(ctx, tx, studentID, courseID, rating)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Int("rating", rating).Msg("Course rated")
	return nil
}
