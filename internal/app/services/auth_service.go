package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/db"
	"github.com/trainly/trainly/internal/pkg/apperrors"
	"github.com/trainly/trainly/internal/pkg/auth"
)

// Faculty accounts created through self-registration get placeholder
// profile fields until the instructor fills them in.
const (
	defaultFacultyTitle       = "Mr./Ms."
	defaultFacultyAffiliation = "Independent"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthUserStore is the user persistence surface the auth service needs.
type AuthUserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUserTx(ctx context.Context, tx pgx.Tx, user *models.User) (int64, error)
	UpdateCredential(ctx context.Context, userID int64, hashed string) error
}

// AuthProfileStore creates the role rows that accompany a new account.
type AuthProfileStore interface {
	CreateStudentTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error)
	CreateFacultyTx(ctx context.Context, tx pgx.Tx, userID int64, title, affiliation string) (int64, error)
}

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, refreshToken string) (*models.Session, error)
	Delete(ctx context.Context, refreshToken string) error
	DeleteExpired(ctx context.Context) error
}

// AuthService handles registration, login and token lifecycle.
type AuthService struct {
	users      AuthUserStore
	profiles   AuthProfileStore
	sessions   SessionStore
	txRunner   db.TxRunner
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users AuthUserStore,
	profiles AuthProfileStore,
	sessions SessionStore,
	txRunner db.TxRunner,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		profiles:   profiles,
		sessions:   sessions,
		txRunner:   txRunner,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (s *AuthService) validateRegistration(req *dto.RegisterRequest) error {
	if !emailRegex.MatchString(strings.TrimSpace(req.Email)) {
		return apperrors.ErrInvalidEmail
	}
	if len(req.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}
	if req.Password != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}
	switch req.Role {
	case models.RoleStudent, models.RoleInstructor:
	default:
		// Admin accounts are provisioned, never self-registered.
		return apperrors.ErrInvalidRole
	}
	return nil
}

// Register creates the account and its role row atomically. The email
// unique constraint is the final arbiter; the EmailExists pre-check only
// gives a friendlier early error.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      req.Role,
		Status:    models.UserActive,
	}

	err = s.txRunner(ctx, func(tx pgx.Tx) error {
		userID, err := s.users.CreateUserTx(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = userID

		switch user.Role {
		case models.RoleStudent:
			_, err = s.profiles.CreateStudentTx(ctx, tx, userID)
		case models.RoleInstructor:
			_, err = s.profiles.CreateFacultyTx(ctx, tx, userID, defaultFacultyTitle, defaultFacultyAffiliation)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")

	token, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: *token, Identity: user.Identity()}, nil
}

// Login verifies the credential against whatever form is stored. Accounts
// still carrying a plaintext or legacy digest credential are rewritten to
// bcrypt on the first successful login.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, needsUpgrade := auth.VerifyCredential(user.Password, req.Password)
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if needsUpgrade {
		if hashed, hashErr := auth.HashPassword(req.Password); hashErr == nil {
			if upErr := s.users.UpdateCredential(ctx, user.ID, hashed); upErr != nil {
				// Login still succeeds; the rewrite retries next time.
				s.logger.Warn().Err(upErr).Int64("userID", user.ID).Msg("Failed to upgrade stored credential")
			} else {
				s.logger.Info().Int64("userID", user.ID).Msg("Stored credential upgraded to bcrypt")
			}
		}
	}

	if err := s.sessions.DeleteExpired(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to prune expired sessions")
	}

	token, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	return &dto.AuthResponse{Token: *token, Identity: user.Identity()}, nil
}

// Refresh rotates the refresh token and issues a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	session, err := s.sessions.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user.Status != models.UserActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.sessions.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh-token session. Access tokens simply expire.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.Delete(ctx, refreshToken)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    s.jwtService.GetRefreshTokenExpiry(),
		CreatedAt:    time.Now(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}
