package models

import "time"

// Session is a stored refresh-token session. One row per device login.
type Session struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
