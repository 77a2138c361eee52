package models

// Faculty defines the instructor profile based on the 'faculty' table.
// Exactly one row exists per user with role=instructor.
type Faculty struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"userId" db:"user_id"`
	Title       string `json:"title" db:"title"`
	Affiliation string `json:"affiliation" db:"affiliation"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}

// Administrator defines the admin profile based on the 'administrators' table.
type Administrator struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"userId" db:"user_id"`

	User *User `json:"user,omitempty"`
}
