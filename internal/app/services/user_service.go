package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/trainly/trainly/internal/app/auth"
	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/pkg/apperrors"
	"github.com/trainly/trainly/internal/pkg/helpers"
)

// UserStore is the user persistence surface for profile and admin views.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateStatus(ctx context.Context, userID int64, status models.UserStatus) error
	ListAll(ctx context.Context, offset uint64, limit int) ([]dto.AdminUser, int64, error)
	RecentRegistrations(ctx context.Context) ([]dto.AdminUser, error)
	ListStudents(ctx context.Context) ([]dto.AdminStudent, error)
	ListInstructors(ctx context.Context) ([]dto.AdminInstructor, error)
}

// FacultyGetter resolves faculty profile fields for the instructor view.
type FacultyGetter interface {
	GetFacultyByUserID(ctx context.Context, userID int64) (*models.Faculty, error)
}

// SessionRevoker revokes every refresh-token session a user holds.
type SessionRevoker interface {
	DeleteAllForUser(ctx context.Context, userID int64) error
}

// UserService serves the authenticated profile and admin user management.
type UserService struct {
	users    UserStore
	faculty  FacultyGetter
	sessions SessionRevoker
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(users UserStore, faculty FacultyGetter, sessions SessionRevoker, logger zerolog.Logger) *UserService {
	return &UserService{users: users, faculty: faculty, sessions: sessions, logger: logger}
}

// Profile assembles the caller's profile from the resolved subject.
func (s *UserService) Profile(ctx context.Context, subject *auth.Subject) (*dto.ProfileResponse, error) {
	user, err := s.users.GetUserByID(ctx, subject.UserID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProfileResponse{Identity: user.Identity()}

	switch subject.Role {
	case models.RoleStudent:
		resp.StudentID = &subject.StudentID
	case models.RoleInstructor:
		resp.FacultyID = &subject.FacultyID
		faculty, err := s.faculty.GetFacultyByUserID(ctx, subject.UserID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrProfileNotFound) {
				return nil, err
			}
		} else {
			resp.Title = &faculty.Title
			resp.Affiliation = &faculty.Affiliation
		}
	case models.RoleAdmin:
		resp.AdminID = &subject.AdminID
	}

	return resp, nil
}

// ListUsers pages through accounts for the admin user management view.
func (s *UserService) ListUsers(ctx context.Context, page, size int) (*dto.AdminUserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	users, total, err := s.users.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.AdminUserListResponse{
		Users:          users,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// RecentRegistrations lists accounts created in the last 30 days.
func (s *UserService) RecentRegistrations(ctx context.Context) ([]dto.AdminUser, error) {
	return s.users.RecentRegistrations(ctx)
}

// ListStudents lists student accounts with enrollment counts.
func (s *UserService) ListStudents(ctx context.Context) ([]dto.AdminStudent, error) {
	return s.users.ListStudents(ctx)
}

// ListInstructors lists faculty accounts with course counts.
func (s *UserService) ListInstructors(ctx context.Context) ([]dto.AdminInstructor, error) {
	return s.users.ListInstructors(ctx)
}

// SetUserStatus toggles an account between active and inactive. Accounts
// are never hard-deleted; admins cannot disable themselves.
func (s *UserService) SetUserStatus(ctx context.Context, callerUserID, targetUserID int64, status models.UserStatus) error {
	if callerUserID == targetUserID && status == models.UserInactive {
		return apperrors.NewValidationError("cannot deactivate your own account")
	}

	if err := s.users.UpdateStatus(ctx, targetUserID, status); err != nil {
		return err
	}

	if status == models.UserInactive {
		// Deactivation takes effect immediately; refresh tokens die with it.
		if err := s.sessions.DeleteAllForUser(ctx, targetUserID); err != nil {
			s.logger.Warn().Err(err).Int64("targetUserID", targetUserID).Msg("Failed to revoke sessions of deactivated user")
		}
	}

	s.logger.Info().Int64("targetUserID", targetUserID).Str("status", string(status)).Int64("byUserID", callerUserID).Msg("Account status changed")
	return nil
}
