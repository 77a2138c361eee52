package models

import "time"

// Enrollment represents a student×course membership based on the
// 'enrollments' table. At most one row exists per (student, course) pair,
// enforced by a unique constraint rather than an application-side check
// alone.
type Enrollment struct {
	StudentID   int64      `json:"studentId" db:"student_id"`
	CourseID    int64      `json:"courseId" db:"course_id"`
	EnrollCode  string     `json:"enrollCode" db:"enroll_code"`
	EnrolledAt  time.Time  `json:"enrolledAt" db:"enrolled_at"`
	Certified   bool       `json:"certified" db:"certified"`
	CompletedAt *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	Rating      *int       `json:"rating,omitempty" db:"rating"`

	// Relations (populated when needed)
	Course  *Course  `json:"course,omitempty"`
	Student *Student `json:"student,omitempty"`
}

// Analytics holds per-(student, course) progress figures produced by an
// external grading process. Percentage fields are clamped to [0,100] on
// read, not on write.
type Analytics struct {
	StudentID         int64     `json:"studentId" db:"student_id"`
	CourseID          int64     `json:"courseId" db:"course_id"`
	CompletionRate    float64   `json:"completionRate" db:"completion_rate"`
	AvgGrade          float64   `json:"avgGrade" db:"avg_grade"`
	TimeSpentHours    float64   `json:"timeSpentHours" db:"time_spent_hours"`
	QuizParticipation int       `json:"quizParticipation" db:"quiz_participation"`
	LastUpdated       time.Time `json:"lastUpdated" db:"last_updated"`
}

// Certificate records a completed course. The verification code is unique
// system-wide and is the only outward-facing secret in the enrollment
// lifecycle.
type Certificate struct {
	StudentID        int64     `json:"studentId" db:"student_id"`
	CourseID         int64     `json:"courseId" db:"course_id"`
	IssueDate        time.Time `json:"issueDate" db:"issue_date"`
	VerificationCode string    `json:"verificationCode" db:"verification_code"`

	Course *Course `json:"course,omitempty"`
}
