package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/db"
	"github.com/trainly/trainly/internal/pkg/apperrors"
)

// CertificateStore is the certificate persistence surface.
type CertificateStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, cert *models.Certificate) error
	ListByStudent(ctx context.Context, studentID int64) ([]dto.CertificateResponse, error)
	GetByCode(ctx context.Context, code string) (*models.Certificate, error)
}

// EnrollmentCompleter marks an enrollment certified.
type EnrollmentCompleter interface {
	MarkCertifiedTx(ctx context.Context, tx pgx.Tx, studentID, courseID int64) error
}

// CourseOwnershipChecker verifies a course belongs to a faculty member.
type CourseOwnershipChecker interface {
	OwnedByFaculty(ctx context.Context, courseID, facultyID int64) (bool, error)
}

// CertificateService issues and verifies completion certificates.
type CertificateService struct {
	certificates CertificateStore
	enrollments  EnrollmentCompleter
	courses      CourseOwnershipChecker
	txRunner     db.TxRunner
	logger       zerolog.Logger
}

// NewCertificateService creates a new CertificateService
func NewCertificateService(
	certificates CertificateStore,
	enrollments EnrollmentCompleter,
	courses CourseOwnershipChecker,
	txRunner db.TxRunner,
	logger zerolog.Logger,
) *CertificateService {
	return &CertificateService{
		certificates: certificates,
		enrollments:  enrollments,
		courses:      courses,
		txRunner:     txRunner,
		logger:       logger,
	}
}

// Issue marks the enrollment certified and creates the certificate in one
// transaction. Only the instructor who owns the course can issue.
func (s *CertificateService) Issue(ctx context.Context, facultyID int64, req *dto.IssueCertificateRequest) (*models.Certificate, error) {
	owned, err := s.courses.OwnedByFaculty(ctx, req.CourseID, facultyID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, apperrors.ErrPermissionDenied
	}

	cert := &models.Certificate{
		StudentID:        req.StudentID,
		CourseID:         req.CourseID,
		IssueDate:        time.Now(),
		VerificationCode: uuid.New().String(),
	}

	err = s.txRunner(ctx, func(tx pgx.Tx) error {
		if err := s.enrollments.MarkCertifiedTx(ctx, tx, req.StudentID, req.CourseID); err != nil {
			return err
		}
		return s.certificates.CreateTx(ctx, tx, cert)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", req.StudentID).Int64("courseID", req.CourseID).Msg("Certificate issued")
	return cert, nil
}

// StudentCertificates lists the student's certificates.
func (s *CertificateService) StudentCertificates(ctx context.Context, studentID int64) ([]dto.CertificateResponse, error) {
	return s.certificates.ListByStudent(ctx, studentID)
}

// Verify looks up a certificate by its verification code. Public; no
// authentication required.
func (s *CertificateService) Verify(ctx context.Context, code string) (*dto.VerifyCertificateResponse, error) {
	cert, err := s.certificates.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &dto.VerifyCertificateResponse{
		CourseTitle: cert.Course.Title,
		IssueDate:   cert.IssueDate,
		Valid:       true,
	}, nil
}
