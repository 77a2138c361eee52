package models

import "time"

// Course represents a course owned by exactly one faculty member.
type Course struct {
	ID            int64        `json:"id" db:"id"`
	InstructorID  int64        `json:"instructorId" db:"instructor_id"`
	Title         string       `json:"title" db:"title"`
	Category      string       `json:"category" db:"category"`
	Cost          float64      `json:"cost" db:"cost"`
	AvgRating     float64      `json:"avgRating" db:"avg_rating"`
	DurationHours int          `json:"durationHours" db:"duration_hours"`
	Syllabus      string       `json:"syllabus" db:"syllabus"`
	Status        CourseStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Instructor *Faculty `json:"instructor,omitempty"`
}
