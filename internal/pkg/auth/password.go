package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor applied to newly hashed credentials.
const BcryptCost = 12

// CredentialKind classifies how a stored credential is encoded. The store
// is mid-migration: old rows hold SHA-256 hex digests or raw passwords,
// new rows hold bcrypt hashes. Classification goes purely by shape.
type CredentialKind int

const (
	CredentialBcrypt CredentialKind = iota
	CredentialLegacySHA256
	CredentialPlaintext
)

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// ClassifyCredential inspects the shape of a stored credential value.
func ClassifyCredential(stored string) CredentialKind {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return CredentialBcrypt
	}
	if len(stored) == sha256.Size*2 && isHex(stored) {
		return CredentialLegacySHA256
	}
	return CredentialPlaintext
}

// VerifyCredential reports whether password matches the stored credential.
// needsUpgrade is true when the match succeeded against a non-bcrypt form,
// meaning the caller should rewrite the stored value with HashPassword.
func VerifyCredential(stored, password string) (ok bool, needsUpgrade bool) {
	switch ClassifyCredential(stored) {
	case CredentialBcrypt:
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
		return err == nil, false
	case CredentialLegacySHA256:
		digest := sha256.Sum256([]byte(password))
		match := subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(hex.EncodeToString(digest[:]))) == 1
		return match, match
	default:
		match := subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
		return match, match
	}
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
