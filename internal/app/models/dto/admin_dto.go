package dto

import (
	"time"

	"github.com/trainly/trainly/internal/app/models"
)

// AdminUser is a user row in the admin listing with the role-specific id
// attached when the role row exists.
type AdminUser struct {
	UserID         int64             `json:"userId"`
	Email          string            `json:"email"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	Role           models.Role       `json:"role"`
	Status         models.UserStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	RoleSpecificID *int64            `json:"roleSpecificId,omitempty"`
}

// AdminUserListResponse is the paginated admin user listing.
type AdminUserListResponse struct {
	Users []AdminUser `json:"users"`
	PaginationInfo
}

// AdminStudent is a student row with enrollment count.
type AdminStudent struct {
	StudentID       int64             `json:"studentId"`
	UserID          int64             `json:"userId"`
	Email           string            `json:"email"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	Status          models.UserStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
	EnrolledCourses int64             `json:"enrolledCourses"`
}

// AdminInstructor is a faculty row with course count.
type AdminInstructor struct {
	FacultyID    int64             `json:"facultyId"`
	UserID       int64             `json:"userId"`
	Email        string            `json:"email"`
	FirstName    string            `json:"firstName"`
	LastName     string            `json:"lastName"`
	Title        string            `json:"title"`
	Affiliation  string            `json:"affiliation"`
	Status       models.UserStatus `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
	TotalCourses int64             `json:"totalCourses"`
}

// UpdateUserStatusRequest toggles an account between active and inactive.
// Accounts are never hard-deleted.
type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=active inactive"`
}
