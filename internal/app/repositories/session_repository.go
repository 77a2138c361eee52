package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/pkg/apperrors"
	"github.com/trainly/trainly/internal/pkg/logger"
)

// SessionRepository stores refresh-token sessions. Access tokens are
// stateless; only the refresh side is persisted so it can be rotated and
// revoked.
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a refresh-token session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	sql, args, err := r.sb.Insert("sessions").
		Columns("user_id", "refresh_token", "expires_at", "created_at").
		Values(session.UserID, session.RefreshToken, session.ExpiresAt, session.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&session.ID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", session.UserID).Msg("Error creating session")
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// GetByToken retrieves an unexpired session by its refresh token.
func (r *SessionRepository) GetByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	var session models.Session
	sql, args, err := r.sb.Select("id", "user_id", "refresh_token", "expires_at", "created_at").
		From("sessions").
		Where(squirrel.Eq{"refresh_token": refreshToken}).
		Where(squirrel.Expr("expires_at > ?", time.Now())).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&session.ID, &session.UserID, &session.RefreshToken,
		&session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		logger.Error().Err(err).Msg("Error scanning session row")
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	return &session, nil
}

// Delete removes a session by its refresh token.
func (r *SessionRepository) Delete(ctx context.Context, refreshToken string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE refresh_token = $1`, refreshToken)
	if err != nil {
		logger.Error().Err(err).Msg("Error deleting session")
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

// DeleteAllForUser removes every session of a user, ending all devices.
func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting user sessions")
		return fmt.Errorf("error deleting user sessions: %w", err)
	}
	return nil
}

// DeleteExpired prunes expired sessions. Called opportunistically on login.
func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		logger.Error().Err(err).Msg("Error pruning expired sessions")
		return fmt.Errorf("error pruning expired sessions: %w", err)
	}
	return nil
}
