package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/pkg/apperrors"
	"github.com/trainly/trainly/internal/pkg/dberrors"
	"github.com/trainly/trainly/internal/pkg/logger"
)

// ProfileRepository handles the role-specific rows that own all scoped
// data: students, faculty and administrators.
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetStudentByUserID retrieves the student profile owning a user.
// Missing rows surface as ErrProfileNotFound: a role=student user without
// a student row is an integrity violation, not ordinary absence.
func (r *ProfileRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	var student models.Student
	sql, args, err := r.sb.Select("id", "user_id").
		From("students").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetFacultyByUserID retrieves the faculty profile owning a user.
func (r *ProfileRepository) GetFacultyByUserID(ctx context.Context, userID int64) (*models.Faculty, error) {
	var faculty models.Faculty
	sql, args, err := r.sb.Select("id", "user_id", "title", "affiliation").
		From("faculty").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&faculty.ID, &faculty.UserID, &faculty.Title, &faculty.Affiliation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error retrieving faculty: %w", err)
	}

	return &faculty, nil
}

// GetAdminByUserID retrieves the administrator profile owning a user.
func (r *ProfileRepository) GetAdminByUserID(ctx context.Context, userID int64) (*models.Administrator, error) {
	var admin models.Administrator
	sql, args, err := r.sb.Select("id", "user_id").
		From("administrators").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get administrator query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID, &admin.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning administrator row")
		return nil, fmt.Errorf("error retrieving administrator: %w", err)
	}

	return &admin, nil
}

// CreateStudentTx inserts the student row inside the caller's
// transaction, keeping user creation and role-row creation atomic.
func (r *ProfileRepository) CreateStudentTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `INSERT INTO students (user_id) VALUES ($1) RETURNING id`, userID).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_user_id_key") {
			logger.Warn().Int64("userID", userID).Msg("Attempted to create duplicate student profile")
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return id, nil
}

// CreateFacultyTx inserts the faculty row inside the caller's transaction.
func (r *ProfileRepository) CreateFacultyTx(ctx context.Context, tx pgx.Tx, userID int64, title, affiliation string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO faculty (user_id, title, affiliation)
		VALUES ($1, $2, $3)
		RETURNING id`,
		userID, title, affiliation).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "faculty_user_id_key") {
			logger.Warn().Int64("userID", userID).Msg("Attempted to create duplicate faculty profile")
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create faculty query")
		return 0, fmt.Errorf("error creating faculty: %w", err)
	}

	return id, nil
}

// CreateAdminTx inserts the administrator row inside the caller's
// transaction. Admin accounts are created by seeding, not registration.
func (r *ProfileRepository) CreateAdminTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO administrators (user_id)
		VALUES ($1)
		RETURNING id`,
		userID).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "administrators_user_id_key") {
			logger.Warn().Int64("userID", userID).Msg("Attempted to create duplicate administrator profile")
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create administrator query")
		return 0, fmt.Errorf("error creating administrator: %w", err)
	}

	return id, nil
}
