package models

// Role defines the user role type
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// UserStatus defines the account status
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// CourseStatus defines the course lifecycle status
type CourseStatus string

const (
	CourseActive   CourseStatus = "active"
	CoursePending  CourseStatus = "pending"
	CourseArchived CourseStatus = "archived"
)
