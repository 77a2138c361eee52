package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/trainly/trainly/internal/app/auth"
	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/pkg/apperrors"
)

type fakeAdminUserStore struct {
	byID     map[int64]*models.User
	statuses map[int64]models.UserStatus
	allUsers []dto.AdminUser
}

func newFakeAdminUserStore() *fakeAdminUserStore {
	return &fakeAdminUserStore{
		byID:     make(map[int64]*models.User),
		statuses: make(map[int64]models.UserStatus),
	}
}

func (f *fakeAdminUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeAdminUserStore) UpdateStatus(_ context.Context, userID int64, status models.UserStatus) error {
	if _, ok := f.byID[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	f.statuses[userID] = status
	return nil
}

func (f *fakeAdminUserStore) ListAll(_ context.Context, offset uint64, limit int) ([]dto.AdminUser, int64, error) {
	total := int64(len(f.allUsers))
	start := int(offset)
	if start > len(f.allUsers) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(f.allUsers) {
		end = len(f.allUsers)
	}
	return f.allUsers[start:end], total, nil
}

func (f *fakeAdminUserStore) RecentRegistrations(_ context.Context) ([]dto.AdminUser, error) {
	return f.allUsers, nil
}

func (f *fakeAdminUserStore) ListStudents(_ context.Context) ([]dto.AdminStudent, error) {
	return nil, nil
}

func (f *fakeAdminUserStore) ListInstructors(_ context.Context) ([]dto.AdminInstructor, error) {
	return nil, nil
}

type fakeSessionRevoker struct {
	revoked []int64
}

func (f *fakeSessionRevoker) DeleteAllForUser(_ context.Context, userID int64) error {
	f.revoked = append(f.revoked, userID)
	return nil
}

type fakeFacultyGetter struct {
	byUserID map[int64]*models.Faculty
}

func (f *fakeFacultyGetter) GetFacultyByUserID(_ context.Context, userID int64) (*models.Faculty, error) {
	if fc, ok := f.byUserID[userID]; ok {
		return fc, nil
	}
	return nil, apperrors.ErrProfileNotFound
}

func newTestUserService(users *fakeAdminUserStore, faculty *fakeFacultyGetter) (*UserService, *fakeSessionRevoker) {
	if faculty == nil {
		faculty = &fakeFacultyGetter{byUserID: make(map[int64]*models.Faculty)}
	}
	sessions := &fakeSessionRevoker{}
	return NewUserService(users, faculty, sessions, zerolog.Nop()), sessions
}

func TestProfile_Student(t *testing.T) {
	users := newFakeAdminUserStore()
	users.byID[10] = &models.User{ID: 10, Email: "sara.ali@student.com", Role: models.RoleStudent}
	svc, _ := newTestUserService(users, nil)

	subject := &appauth.Subject{UserID: 10, Role: models.RoleStudent, StudentID: 100}

	profile, err := svc.Profile(context.Background(), subject)
	require.NoError(t, err)
	require.NotNil(t, profile.StudentID)
	assert.Equal(t, int64(100), *profile.StudentID)
	assert.Nil(t, profile.FacultyID)
	assert.Nil(t, profile.Title)
}

func TestProfile_InstructorIncludesFacultyFields(t *testing.T) {
	users := newFakeAdminUserStore()
	users.byID[20] = &models.User{ID: 20, Email: "mohamed.eissa@instructor.com", Role: models.RoleInstructor}
	faculty := &fakeFacultyGetter{byUserID: map[int64]*models.Faculty{
		20: {ID: 200, UserID: 20, Title: "Dr.", Affiliation: "Cairo University"},
	}}
	svc, _ := newTestUserService(users, faculty)

	subject := &appauth.Subject{UserID: 20, Role: models.RoleInstructor, FacultyID: 200}

	profile, err := svc.Profile(context.Background(), subject)
	require.NoError(t, err)
	require.NotNil(t, profile.FacultyID)
	assert.Equal(t, int64(200), *profile.FacultyID)
	require.NotNil(t, profile.Title)
	assert.Equal(t, "Dr.", *profile.Title)
	assert.Equal(t, "Cairo University", *profile.Affiliation)
}

func TestListUsers_Paginates(t *testing.T) {
	users := newFakeAdminUserStore()
	for i := int64(1); i <= 25; i++ {
		users.allUsers = append(users.allUsers, dto.AdminUser{UserID: i})
	}
	svc, _ := newTestUserService(users, nil)

	resp, err := svc.ListUsers(context.Background(), 2, 10)
	require.NoError(t, err)

	assert.Len(t, resp.Users, 10)
	assert.Equal(t, int64(11), resp.Users[0].UserID)
	assert.Equal(t, int64(25), resp.TotalItems)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
}

func TestSetUserStatus(t *testing.T) {
	users := newFakeAdminUserStore()
	users.byID[10] = &models.User{ID: 10, Status: models.UserActive}
	svc, sessions := newTestUserService(users, nil)

	require.NoError(t, svc.SetUserStatus(context.Background(), 30, 10, models.UserInactive))
	assert.Equal(t, models.UserInactive, users.statuses[10])
	assert.Equal(t, []int64{10}, sessions.revoked, "deactivation must revoke refresh sessions")

	// reactivation does not touch sessions
	require.NoError(t, svc.SetUserStatus(context.Background(), 30, 10, models.UserActive))
	assert.Len(t, sessions.revoked, 1)
}

func TestSetUserStatus_SelfDeactivationBlocked(t *testing.T) {
	users := newFakeAdminUserStore()
	users.byID[30] = &models.User{ID: 30, Status: models.UserActive}
	svc, _ := newTestUserService(users, nil)

	err := svc.SetUserStatus(context.Background(), 30, 30, models.UserInactive)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, users.statuses)

	// reactivating yourself is pointless but harmless
	assert.NoError(t, svc.SetUserStatus(context.Background(), 30, 30, models.UserActive))
}

func TestSetUserStatus_UnknownUser(t *testing.T) {
	svc, _ := newTestUserService(newFakeAdminUserStore(), nil)

	err := svc.SetUserStatus(context.Background(), 30, 999, models.UserInactive)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
