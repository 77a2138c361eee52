package dto

import "time"

// CourseSort enumerates the catalog sort orders
type CourseSort string

const (
	SortMostPopular  CourseSort = "popular"
	SortHighestRated CourseSort = "rating"
	SortNewest       CourseSort = "newest"
)

// BrowseCoursesRequest represents catalog filter parameters
type BrowseCoursesRequest struct {
	Category string     `form:"category"`
	Search   string     `form:"search"`
	Sort     CourseSort `form:"sort,default=popular"`
}

// CatalogCourse is a catalog entry with instructor attribution and the
// current enrollment count.
type CatalogCourse struct {
	CourseID        int64   `json:"courseId"`
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	Cost            float64 `json:"cost"`
	AvgRating       float64 `json:"avgRating"`
	DurationHours   int     `json:"durationHours"`
	Syllabus        string  `json:"syllabus"`
	Enrollments     int64   `json:"enrollments"`
	InstructorName  string  `json:"instructorName"`
	InstructorTitle string  `json:"instructorTitle"`
}

// InstructorCourse is a course row in the owning instructor's view.
type InstructorCourse struct {
	CourseID    int64   `json:"courseId"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	AvgRating   float64 `json:"avgRating"`
	Enrollments int64   `json:"enrollments"`
}

// AdminCourse is a course row in the admin management view.
type AdminCourse struct {
	CourseID    int64     `json:"courseId"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Cost        float64   `json:"cost"`
	AvgRating   float64   `json:"avgRating"`
	Instructor  string    `json:"instructor"`
	Enrollments int64     `json:"enrollments"`
	CreatedAt   time.Time `json:"createdAt"`
}
