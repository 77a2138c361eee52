package dto

import "time"

// EnrollResponse confirms a new enrollment
type EnrollResponse struct {
	CourseID   int64     `json:"courseId"`
	EnrollCode string    `json:"enrollCode"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// ActiveCourse is an in-progress enrollment with its analytics, as shown
// on the student's course list.
type ActiveCourse struct {
	CourseID       int64     `json:"courseId"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	DurationHours  int       `json:"durationHours"`
	InstructorName string    `json:"instructorName"`
	EnrolledAt     time.Time `json:"enrolledAt"`
	CompletionRate float64   `json:"completionRate"`
	AvgGrade       float64   `json:"avgGrade"`
	TimeSpentHours float64   `json:"timeSpentHours"`
}

// CompletedCourse is a certified enrollment with its certificate code.
type CompletedCourse struct {
	CourseID         int64      `json:"courseId"`
	Title            string     `json:"title"`
	Category         string     `json:"category"`
	InstructorName   string     `json:"instructorName"`
	AvgGrade         float64    `json:"avgGrade"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	Rating           *int       `json:"rating,omitempty"`
	VerificationCode *string    `json:"verificationCode,omitempty"`
}

// CertificateResponse is a certificate entry in the student's trophy list.
type CertificateResponse struct {
	CourseID         int64     `json:"courseId"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	IssueDate        time.Time `json:"issueDate"`
	VerificationCode string    `json:"verificationCode"`
}

// IssueCertificateRequest marks an enrollment complete and issues the
// certificate. The student is identified explicitly; the course must be
// owned by the calling instructor.
type IssueCertificateRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
	CourseID  int64 `json:"courseId" binding:"required,min=1"`
}

// VerifyCertificateResponse is the public certificate lookup result.
type VerifyCertificateResponse struct {
	CourseTitle string    `json:"courseTitle"`
	IssueDate   time.Time `json:"issueDate"`
	Valid       bool      `json:"valid"`
}

// RateCourseRequest records the student's rating on a completed course.
type RateCourseRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}
