package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/pkg/apperrors"
)

type fakeProfileResolver struct {
	students map[int64]*models.Student
	faculty  map[int64]*models.Faculty
	admins   map[int64]*models.Administrator
}

func (f *fakeProfileResolver) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	if s, ok := f.students[userID]; ok {
		return s, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func (f *fakeProfileResolver) GetFacultyByUserID(_ context.Context, userID int64) (*models.Faculty, error) {
	if fc, ok := f.faculty[userID]; ok {
		return fc, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func (f *fakeProfileResolver) GetAdminByUserID(_ context.Context, userID int64) (*models.Administrator, error) {
	if a, ok := f.admins[userID]; ok {
		return a, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func newTestScopeService() *ScopeService {
	return NewScopeService(&fakeProfileResolver{
		students: map[int64]*models.Student{10: {ID: 100, UserID: 10}},
		faculty:  map[int64]*models.Faculty{20: {ID: 200, UserID: 20}},
		admins:   map[int64]*models.Administrator{30: {ID: 300, UserID: 30}},
	})
}

func TestResolveSubject_Student(t *testing.T) {
	svc := newTestScopeService()

	subject, err := svc.ResolveSubject(context.Background(), 10, models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, int64(10), subject.UserID)
	assert.Equal(t, models.RoleStudent, subject.Role)
	assert.Equal(t, int64(100), subject.StudentID)
	assert.Zero(t, subject.FacultyID)
	assert.Zero(t, subject.AdminID)
}

func TestResolveSubject_Instructor(t *testing.T) {
	svc := newTestScopeService()

	subject, err := svc.ResolveSubject(context.Background(), 20, models.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, int64(200), subject.FacultyID)
	assert.Zero(t, subject.StudentID)
}

func TestResolveSubject_Admin(t *testing.T) {
	svc := newTestScopeService()

	subject, err := svc.ResolveSubject(context.Background(), 30, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(300), subject.AdminID)
}

func TestResolveSubject_MissingRoleRow(t *testing.T) {
	svc := newTestScopeService()

	// user 10 is a student; resolving them as an instructor must fail
	_, err := svc.ResolveSubject(context.Background(), 10, models.RoleInstructor)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestResolveSubject_UnknownRole(t *testing.T) {
	svc := newTestScopeService()

	_, err := svc.ResolveSubject(context.Background(), 10, models.Role("superuser"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
}
