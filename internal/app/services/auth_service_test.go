package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/db"
	"github.com/trainly/trainly/internal/pkg/apperrors"
	"github.com/trainly/trainly/internal/pkg/auth"
)

// passthroughTx runs the transaction body directly; the fakes ignore the
// tx handle.
var passthroughTx db.TxRunner = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "trainly.app",
	})
}

type fakeUserStore struct {
	nextID  int64
	byEmail map[string]*models.User
	byID    map[int64]*models.User

	credentialUpdates map[int64]string
	updateErr         error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		nextID:            1,
		byEmail:           make(map[string]*models.User),
		byID:              make(map[int64]*models.User),
		credentialUpdates: make(map[int64]string),
	}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return user
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserStore) CreateUserTx(_ context.Context, _ pgx.Tx, user *models.User) (int64, error) {
	if _, ok := f.byEmail[user.Email]; ok {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	return f.add(user).ID, nil
}

func (f *fakeUserStore) UpdateCredential(_ context.Context, userID int64, hashed string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.credentialUpdates[userID] = hashed
	if u, ok := f.byID[userID]; ok {
		u.Password = hashed
	}
	return nil
}

type fakeAuthProfileStore struct {
	studentUserIDs []int64
	facultyUserIDs []int64
	facultyTitle   string
	facultyAffil   string
}

func (f *fakeAuthProfileStore) CreateStudentTx(_ context.Context, _ pgx.Tx, userID int64) (int64, error) {
	f.studentUserIDs = append(f.studentUserIDs, userID)
	return userID + 1000, nil
}

func (f *fakeAuthProfileStore) CreateFacultyTx(_ context.Context, _ pgx.Tx, userID int64, title, affiliation string) (int64, error) {
	f.facultyUserIDs = append(f.facultyUserIDs, userID)
	f.facultyTitle = title
	f.facultyAffil = affiliation
	return userID + 2000, nil
}

type fakeSessionStore struct {
	byToken map[string]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{byToken: make(map[string]*models.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, session *models.Session) error {
	f.byToken[session.RefreshToken] = session
	return nil
}

func (f *fakeSessionStore) GetByToken(_ context.Context, refreshToken string) (*models.Session, error) {
	if s, ok := f.byToken[refreshToken]; ok {
		return s, nil
	}
	return nil, apperrors.ErrInvalidRefreshToken
}

func (f *fakeSessionStore) Delete(_ context.Context, refreshToken string) error {
	delete(f.byToken, refreshToken)
	return nil
}

func (f *fakeSessionStore) DeleteExpired(_ context.Context) error { return nil }

func newTestAuthService(users *fakeUserStore, profiles *fakeAuthProfileStore, sessions *fakeSessionStore) *AuthService {
	return NewAuthService(users, profiles, sessions, passthroughTx, testJWTService(), zerolog.Nop())
}

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FirstName:       "Sara",
		LastName:        "Ali",
		Email:           "sara.ali@student.com",
		Password:        "student-pass-1",
		ConfirmPassword: "student-pass-1",
		Role:            models.RoleStudent,
	}
}

func TestRegister_Student(t *testing.T) {
	users := newFakeUserStore()
	profiles := &fakeAuthProfileStore{}
	sessions := newFakeSessionStore()
	svc := newTestAuthService(users, profiles, sessions)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "sara.ali@student.com", resp.Identity.Email)
	assert.Equal(t, models.RoleStudent, resp.Identity.Role)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Len(t, profiles.studentUserIDs, 1)
	assert.Empty(t, profiles.facultyUserIDs)

	// stored credential is bcrypt, never the raw password
	stored := users.byEmail["sara.ali@student.com"]
	assert.NotEqual(t, "student-pass-1", stored.Password)
	assert.Equal(t, auth.CredentialBcrypt, auth.ClassifyCredential(stored.Password))

	// refresh token was persisted as a session
	assert.Contains(t, sessions.byToken, resp.Token.RefreshToken)
}

func TestRegister_InstructorGetsDefaultProfile(t *testing.T) {
	users := newFakeUserStore()
	profiles := &fakeAuthProfileStore{}
	svc := newTestAuthService(users, profiles, newFakeSessionStore())

	req := registerRequest()
	req.Email = "mohamed.eissa@instructor.com"
	req.Role = models.RoleInstructor

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, profiles.facultyUserIDs, 1)
	assert.Equal(t, "Mr./Ms.", profiles.facultyTitle)
	assert.Equal(t, "Independent", profiles.facultyAffil)
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), &fakeAuthProfileStore{}, newFakeSessionStore())

	tests := []struct {
		name    string
		mutate  func(*dto.RegisterRequest)
		wantErr error
	}{
		{"bad email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }, apperrors.ErrInvalidEmail},
		{"short password", func(r *dto.RegisterRequest) { r.Password, r.ConfirmPassword = "short", "short" }, apperrors.ErrInvalidPassword},
		{"confirm mismatch", func(r *dto.RegisterRequest) { r.ConfirmPassword = "something-else" }, apperrors.ErrPasswordMismatch},
		{"admin self-registration", func(r *dto.RegisterRequest) { r.Role = models.RoleAdmin }, apperrors.ErrInvalidRole},
		{"unknown role", func(r *dto.RegisterRequest) { r.Role = "wizard" }, apperrors.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := registerRequest()
			tt.mutate(req)
			_, err := svc.Register(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, &fakeAuthProfileStore{}, newFakeSessionStore())

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLogin_RoundTrip(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := newTestAuthService(users, &fakeAuthProfileStore{}, sessions)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Sara.Ali@student.com", // email lookup is case-insensitive
		Password: "student-pass-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "sara.ali@student.com", resp.Identity.Email)
	assert.Empty(t, users.credentialUpdates, "bcrypt credential must not be rewritten")
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newTestAuthService(users, &fakeAuthProfileStore{}, newFakeSessionStore())

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "sara.ali@student.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserStore(), &fakeAuthProfileStore{}, newFakeSessionStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@nowhere.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials, "unknown email must not be distinguishable from a wrong password")
}

func TestLogin_PlaintextCredentialUpgraded(t *testing.T) {
	users := newFakeUserStore()
	users.add(&models.User{
		Email:     "admin@trainly.com",
		Password:  "admin123",
		FirstName: "System",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
		Status:    models.UserActive,
	})
	svc := newTestAuthService(users, &fakeAuthProfileStore{}, newFakeSessionStore())

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "admin@trainly.com", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)

	hashed, ok := users.credentialUpdates[resp.Identity.UserID]
	require.True(t, ok, "plaintext credential must be rewritten on login")
	assert.Equal(t, auth.CredentialBcrypt, auth.ClassifyCredential(hashed))

	// second login verifies against the upgraded hash
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "admin@trainly.com", Password: "admin123"})
	require.NoError(t, err)
}

func TestLogin_UpgradeFailureStillSucceeds(t *testing.T) {
	users := newFakeUserStore()
	users.add(&models.User{
		Email:    "legacy@trainly.com",
		Password: "legacy-pass",
		Role:     models.RoleStudent,
		Status:   models.UserActive,
	})
	users.updateErr = assert.AnError
	svc := newTestAuthService(users, &fakeAuthProfileStore{}, newFakeSessionStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "legacy@trainly.com", Password: "legacy-pass"})
	assert.NoError(t, err)
}

func TestLogin_DisabledAccount(t *testing.T) {
	users := newFakeUserStore()
	users.add(&models.User{
		Email:    "blocked@trainly.com",
		Password: "blocked-pass",
		Role:     models.RoleStudent,
		Status:   models.UserInactive,
	})
	svc := newTestAuthService(users, &fakeAuthProfileStore{}, newFakeSessionStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "blocked@trainly.com", Password: "blocked-pass"})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)

	// wrong password on a disabled account must not reveal the status
	_, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "blocked@trainly.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRefresh_RotatesToken(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := newTestAuthService(users, &fakeAuthProfileStore{}, sessions)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	oldToken := resp.Token.RefreshToken

	token, err := svc.Refresh(context.Background(), oldToken)
	require.NoError(t, err)
	assert.NotEqual(t, oldToken, token.RefreshToken)
	assert.NotContains(t, sessions.byToken, oldToken, "used refresh token must be revoked")
	assert.Contains(t, sessions.byToken, token.RefreshToken)

	// replaying the rotated-out token fails
	_, err = svc.Refresh(context.Background(), oldToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestRefresh_DisabledAccount(t *testing.T) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := newTestAuthService(users, &fakeAuthProfileStore{}, sessions)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	users.byID[resp.Identity.UserID].Status = models.UserInactive

	_, err = svc.Refresh(context.Background(), resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestLogout_RevokesSession(t *testing.T) {
	sessions := newFakeSessionStore()
	svc := newTestAuthService(newFakeUserStore(), &fakeAuthProfileStore{}, sessions)

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.Token.RefreshToken))
	_, err = svc.Refresh(context.Background(), resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}
