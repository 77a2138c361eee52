package dto

import "github.com/trainly/trainly/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents a self-service registration. Only student and
// instructor accounts can be created this way; admin accounts are seeded.
type RegisterRequest struct {
	FirstName       string      `json:"firstName" binding:"required"`
	LastName        string      `json:"lastName" binding:"required"`
	Email           string      `json:"email" binding:"required,email"`
	Password        string      `json:"password" binding:"required,min=8"`
	ConfirmPassword string      `json:"confirmPassword" binding:"required"`
	Role            models.Role `json:"role" binding:"required"`
}

// RefreshTokenRequest represents a refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	TokenType        string `json:"tokenType"`
	ExpiresIn        int64  `json:"expiresIn"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token    TokenResponse   `json:"token"`
	Identity models.Identity `json:"identity"`
}

// ProfileResponse represents the authenticated user's profile with the
// role-specific subject attached.
type ProfileResponse struct {
	Identity    models.Identity `json:"identity"`
	StudentID   *int64          `json:"studentId,omitempty"`
	FacultyID   *int64          `json:"facultyId,omitempty"`
	AdminID     *int64          `json:"adminId,omitempty"`
	Title       *string         `json:"title,omitempty"`
	Affiliation *string         `json:"affiliation,omitempty"`
}
