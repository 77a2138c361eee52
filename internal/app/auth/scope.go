package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/pkg/apperrors"
	"github.com/trainly/trainly/internal/pkg/logger"
)

// Subject is the resolved identity a request acts as. Exactly one of the
// role-specific ids is set, matching Role. Handlers read the subject from
// the request context and never accept caller-supplied role ids.
type Subject struct {
	UserID    int64
	Email     string
	Role      models.Role
	StudentID int64
	FacultyID int64
	AdminID   int64
}

// ProfileResolver is the subset of the profile repository the scope
// service needs.
type ProfileResolver interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetFacultyByUserID(ctx context.Context, userID int64) (*models.Faculty, error)
	GetAdminByUserID(ctx context.Context, userID int64) (*models.Administrator, error)
}

// ScopeService resolves authenticated users to their role-specific
// subject identity.
type ScopeService struct {
	profiles ProfileResolver
}

// NewScopeService creates a new ScopeService
func NewScopeService(profiles ProfileResolver) *ScopeService {
	return &ScopeService{profiles: profiles}
}

// ResolveSubject maps a user id and role to the role-specific identity.
// A user row without its role row is a data integrity violation; it is
// logged and surfaces as ErrProfileNotFound rather than a generic 404.
func (s *ScopeService) ResolveSubject(ctx context.Context, userID int64, role models.Role) (*Subject, error) {
	subject := &Subject{UserID: userID, Role: role}

	switch role {
	case models.RoleStudent:
		student, err := s.profiles.GetStudentByUserID(ctx, userID)
		if err != nil {
			return nil, s.profileError(err, userID, role)
		}
		subject.StudentID = student.ID
	case models.RoleInstructor:
		faculty, err := s.profiles.GetFacultyByUserID(ctx, userID)
		if err != nil {
			return nil, s.profileError(err, userID, role)
		}
		subject.FacultyID = faculty.ID
	case models.RoleAdmin:
		admin, err := s.profiles.GetAdminByUserID(ctx, userID)
		if err != nil {
			return nil, s.profileError(err, userID, role)
		}
		subject.AdminID = admin.ID
	default:
		return nil, apperrors.ErrInvalidRole
	}

	return subject, nil
}

func (s *ScopeService) profileError(err error, userID int64, role models.Role) error {
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		logger.Warn().Int64("userID", userID).Str("role", string(role)).Msg("User row exists without its role row")
		return apperrors.ErrProfileNotFound
	}
	return fmt.Errorf("error resolving subject: %w", err)
}
