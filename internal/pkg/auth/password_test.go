package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha256Hex(password string) string {
	digest := sha256.Sum256([]byte(password))
	return hex.EncodeToString(digest[:])
}

func TestClassifyCredential(t *testing.T) {
	hashed, err := HashPassword("some-password")
	require.NoError(t, err)

	tests := []struct {
		name   string
		stored string
		want   CredentialKind
	}{
		{"bcrypt 2a prefix", "$2a$12$abcdefghijklmnopqrstuv", CredentialBcrypt},
		{"bcrypt 2b prefix", hashed, CredentialBcrypt},
		{"sha256 hex digest", sha256Hex("hunter2hunter2"), CredentialLegacySHA256},
		{"uppercase sha256 hex", "5E884898DA28047151D0E56F8DC6292773603D0D6AABBDD62A11EF721D1542D8", CredentialLegacySHA256},
		{"plain password", "admin123", CredentialPlaintext},
		{"64 chars but not hex", "zz884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", CredentialPlaintext},
		{"empty", "", CredentialPlaintext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCredential(tt.stored))
		})
	}
}

func TestVerifyCredential_Bcrypt(t *testing.T) {
	hashed, err := HashPassword("correct horse")
	require.NoError(t, err)

	ok, needsUpgrade := VerifyCredential(hashed, "correct horse")
	assert.True(t, ok)
	assert.False(t, needsUpgrade, "bcrypt credentials never need rewriting")

	ok, needsUpgrade = VerifyCredential(hashed, "wrong horse")
	assert.False(t, ok)
	assert.False(t, needsUpgrade)
}

func TestVerifyCredential_LegacySHA256(t *testing.T) {
	stored := sha256Hex("student123")

	ok, needsUpgrade := VerifyCredential(stored, "student123")
	assert.True(t, ok)
	assert.True(t, needsUpgrade, "matching a legacy digest must trigger an upgrade")

	ok, needsUpgrade = VerifyCredential(stored, "student124")
	assert.False(t, ok)
	assert.False(t, needsUpgrade, "a failed match must not trigger a rewrite")
}

func TestVerifyCredential_Plaintext(t *testing.T) {
	ok, needsUpgrade := VerifyCredential("admin123", "admin123")
	assert.True(t, ok)
	assert.True(t, needsUpgrade, "matching a plaintext credential must trigger an upgrade")

	ok, needsUpgrade = VerifyCredential("admin123", "Admin123")
	assert.False(t, ok)
	assert.False(t, needsUpgrade)
}

func TestVerifyCredential_PlaintextNeverMatchesItsOwnHash(t *testing.T) {
	// A user whose real password happens to look like a digest must still
	// log in with the password, not the digest.
	stored := sha256Hex("secret-value")
	ok, _ := VerifyCredential(stored, stored)
	assert.False(t, ok)
}

func TestHashPassword_ProducesBcrypt(t *testing.T) {
	hashed, err := HashPassword("pass-phrase-1")
	require.NoError(t, err)
	assert.NotEqual(t, "pass-phrase-1", hashed)
	assert.Equal(t, CredentialBcrypt, ClassifyCredential(hashed))
}
