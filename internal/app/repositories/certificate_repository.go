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
	"github.com/trainly/trainly/internal/pkg/logger"
)

// CertificateRepository handles certificate database operations
type CertificateRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCertificateRepository creates a new CertificateRepository
func NewCertificateRepository(db *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTx inserts a certificate inside an existing transaction. The
// (student_id, course_id) unique constraint rejects double issuance.
func (r *CertificateRepository) CreateTx(ctx context.Context, tx pgx.Tx, cert *models.Certificate) error {
	sql, args, err := r.sb.Insert("certificates").
		Columns("student_id", "course_id", "issue_date", "verification_code").
		Values(cert.StudentID, cert.CourseID, cert.IssueDate, cert.VerificationCode).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create certificate query: %w", err)
	}

	_, err = tx.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "certificates_student_id_course_id_key") {
			return apperrors.ErrCertificateExists
		}
		logger.Error().Err(err).Int64("studentID", cert.StudentID).Int64("courseID", cert.CourseID).Msg("Error creating certificate")
		return fmt.Errorf("error creating certificate: %w", err)
	}

	return nil
}

// ListByStudent lists a student's certificates, newest first.
func (r *CertificateRepository) ListByStudent(ctx context.Context, studentID int64) ([]dto.CertificateResponse, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.title", "c.category", "cert.issue_date", "cert.verification_code").
		From("certificates cert").
		Join("courses c ON cert.course_id = c.id").
		Where(squirrel.Eq{"cert.student_id": studentID}).
		OrderBy("cert.issue_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list certificates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list certificates query")
		return nil, fmt.Errorf("error querying certificates: %w", err)
	}
	defer rows.Close()

	var certs []dto.CertificateResponse
	for rows.Next() {
		var c dto.CertificateResponse
		if err := rows.Scan(&c.CourseID, &c.Title, &c.Category, &c.IssueDate, &c.VerificationCode); err != nil {
			return nil, fmt.Errorf("error scanning certificate row: %w", err)
		}
		certs = append(certs, c)
	}

	return certs, rows.Err()
}

// GetByCode looks up a certificate by its verification code.
func (r *CertificateRepository) GetByCode(ctx context.Context, code string) (*models.Certificate, error) {
	var cert models.Certificate
	cert.Course = &models.Course{}
	sql, args, err := r.sb.Select(
		"cert.student_id", "cert.course_id", "cert.issue_date", "cert.verification_code",
		"c.title").
		From("certificates cert").
		Join("courses c ON cert.course_id = c.id").
		Where(squirrel.Eq{"cert.verification_code": code}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get certificate query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&cert.StudentID, &cert.CourseID, &cert.IssueDate, &cert.VerificationCode,
		&cert.Course.Title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCertificateNotFound
		}
		logger.Error().Err(err).Msg("Error scanning certificate row")
		return nil, fmt.Errorf("error retrieving certificate: %w", err)
	}

	return &cert, nil
}
