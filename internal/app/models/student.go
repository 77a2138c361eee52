package models

// Student defines the student profile based on the 'students' table.
// Exactly one row exists per user with role=student.
type Student struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"userId" db:"user_id"`

	// Relations (populated when needed)
	User *User `json:"user,omitempty"`
}
