package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "trainly.app",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(42, "sara.ali@student.com", "student")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
	assert.Equal(t, int((720 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "sara.ali@student.com", claims.Email)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "trainly.app", claims.Issuer)
}

func TestGenerateTokenPair_RefreshTokensAreUnique(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, first, _, _, err := svc.GenerateTokenPair(1, "a@b.com", "student")
	require.NoError(t, err)
	_, second, _, _, err := svc.GenerateTokenPair(1, "a@b.com", "student")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	access, _, _, _, err := svc.GenerateTokenPair(7, "x@y.com", "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	access, _, _, _, err := svc.GenerateTokenPair(7, "x@y.com", "admin")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "trainly.app",
	})

	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateAndExtractClaims_EmptyToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
