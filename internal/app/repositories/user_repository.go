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

const userColumns = "id, email, password, first_name, last_name, role, status, created_at"

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Role, &user.Status, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email regardless of status. The
// caller decides how to treat inactive accounts.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Error checking email existence")
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// CreateUserTx inserts a user row inside the caller's transaction and
// returns the generated id. A duplicate email surfaces as
// ErrEmailAlreadyExists via the users_email_key constraint, closing the
// window left open by the pre-insert existence check.
func (r *UserRepository) CreateUserTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO users (email, password, first_name, last_name, role, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		user.Email, user.Password, user.FirstName, user.LastName, user.Role, user.Status).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			logger.Warn().Str("email", user.Email).Msg("Attempted to register duplicate email")
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// UpdateCredential rewrites the stored credential for a user. Used by the
// lazy credential migration after a legacy match.
func (r *UserRepository) UpdateCredential(ctx context.Context, userID int64, hashed string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", hashed).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update credential query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating stored credential")
		return fmt.Errorf("error updating credential: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateStatus toggles an account between active and inactive.
func (r *UserRepository) UpdateStatus(ctx context.Context, userID int64, status models.UserStatus) error {
	sql, args, err := r.sb.Update("users").
		Set("status", status).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Str("status", string(status)).Msg("Error updating user status")
		return fmt.Errorf("error updating user status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		logger.Warn().Int64("userID", userID).Msg("Attempted to update status of non-existent user")
		return apperrors.ErrUserNotFound
	}

	logger.Info().Int64("userID", userID).Str("status", string(status)).Msg("User status updated")
	return nil
}

// ListAll lists accounts with the matching role-row id resolved per role,
// newest first, along with the total count for pagination.
func (r *UserRepository) ListAll(ctx context.Context, offset uint64, limit int) ([]dto.AdminUser, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting users")
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.status, u.created_at,
			CASE u.role
				WHEN 'student' THEN s.id
				WHEN 'instructor' THEN f.id
				WHEN 'admin' THEN a.id
			END AS role_specific_id
		FROM users u
		LEFT JOIN students s ON s.user_id = u.id
		LEFT JOIN faculty f ON f.user_id = u.id
		LEFT JOIN administrators a ON a.user_id = u.id
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, 0, fmt.Errorf("error querying users: %w", err)
	}
	defer rows.Close()

	var users []dto.AdminUser
	for rows.Next() {
		var u dto.AdminUser
		err := rows.Scan(&u.UserID, &u.Email, &u.FirstName, &u.LastName,
			&u.Role, &u.Status, &u.CreatedAt, &u.RoleSpecificID)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}

	return users, total, rows.Err()
}

// ListStudents lists student accounts with their enrollment counts.
func (r *UserRepository) ListStudents(ctx context.Context) ([]dto.AdminStudent, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, u.id, u.email, u.first_name, u.last_name, u.status, u.created_at,
			COUNT(e.course_id) AS enrolled_courses
		FROM students s
		JOIN users u ON s.user_id = u.id
		LEFT JOIN enrollments e ON e.student_id = s.id
		GROUP BY s.id, u.id, u.email, u.first_name, u.last_name, u.status, u.created_at
		ORDER BY u.created_at DESC`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	var students []dto.AdminStudent
	for rows.Next() {
		var s dto.AdminStudent
		err := rows.Scan(&s.StudentID, &s.UserID, &s.Email, &s.FirstName,
			&s.LastName, &s.Status, &s.CreatedAt, &s.EnrolledCourses)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

// RecentRegistrations lists accounts created within the last 30 days,
// newest first.
func (r *UserRepository) RecentRegistrations(ctx context.Context) ([]dto.AdminUser, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.status, u.created_at,
			CASE u.role
				WHEN 'student' THEN s.id
				WHEN 'instructor' THEN f.id
				WHEN 'admin' THEN a.id
			END AS role_specific_id
		FROM users u
		LEFT JOIN students s ON s.user_id = u.id
		LEFT JOIN faculty f ON f.user_id = u.id
		LEFT JOIN administrators a ON a.user_id = u.id
		WHERE u.created_at >= NOW() - INTERVAL '30 days'
		ORDER BY u.created_at DESC`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing recent registrations query")
		return nil, fmt.Errorf("error querying recent registrations: %w", err)
	}
	defer rows.Close()

	var users []dto.AdminUser
	for rows.Next() {
		var u dto.AdminUser
		err := rows.Scan(&u.UserID, &u.Email, &u.FirstName, &u.LastName,
			&u.Role, &u.Status, &u.CreatedAt, &u.RoleSpecificID)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ListInstructors lists faculty accounts with their course counts.
func (r *UserRepository) ListInstructors(ctx context.Context) ([]dto.AdminInstructor, error) {
	rows, err := r.db.Query(ctx, `
		SELECT f.id, u.id, u.email, u.first_name, u.last_name, f.title, f.affiliation,
			u.status, u.created_at, COUNT(c.id) AS total_courses
		FROM faculty f
		JOIN users u ON f.user_id = u.id
		LEFT JOIN courses c ON c.instructor_id = f.id
		GROUP BY f.id, u.id, u.email, u.first_name, u.last_name, f.title, f.affiliation,
			u.status, u.created_at
		ORDER BY u.created_at DESC`)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list instructors query")
		return nil, fmt.Errorf("error querying instructors: %w", err)
	}
	defer rows.Close()

	var instructors []dto.AdminInstructor
	for rows.Next() {
		var i dto.AdminInstructor
		err := rows.Scan(&i.FacultyID, &i.UserID, &i.Email, &i.FirstName,
			&i.LastName, &i.Title, &i.Affiliation, &i.Status, &i.CreatedAt,
			&i.TotalCourses)
		if err != nil {
			return nil, fmt.Errorf("error scanning instructor row: %w", err)
		}
		instructors = append(instructors, i)
	}

	return instructors, rows.Err()
}
