package dto

import "time"

// StudentDashboard is the student's metric row plus chart feeds.
type StudentDashboard struct {
	EnrolledCount    int64             `json:"enrolledCount"`
	CompletedCount   int64             `json:"completedCount"`
	AvgGrade         float64           `json:"avgGrade"`
	TotalStudyHours  float64           `json:"totalStudyHours"`
	ContinueLearning []CourseProgress  `json:"continueLearning"`
	Performance      []CoursePerformance `json:"performance"`
}

// CourseProgress is a continue-learning entry.
type CourseProgress struct {
	CourseID       int64   `json:"courseId"`
	Title          string  `json:"title"`
	Category       string  `json:"category"`
	CompletionRate float64 `json:"completionRate"`
	AvgGrade       float64 `json:"avgGrade"`
}

// CoursePerformance is a per-course analytics row.
type CoursePerformance struct {
	Title             string  `json:"title"`
	CompletionRate    float64 `json:"completionRate"`
	AvgGrade          float64 `json:"avgGrade"`
	TimeSpentHours    float64 `json:"timeSpentHours"`
	QuizParticipation int     `json:"quizParticipation"`
}

// InstructorDashboard is the instructor's metric row plus chart feeds.
type InstructorDashboard struct {
	TotalCourses  int64              `json:"totalCourses"`
	ActiveCourses int64              `json:"activeCourses"`
	TotalStudents int64              `json:"totalStudents"`
	AvgRating     float64            `json:"avgRating"`
	Courses       []InstructorCourse `json:"courses"`
	Distribution  []CourseEnrollmentCount `json:"distribution"`
}

// CourseEnrollmentCount feeds the enrollment distribution chart.
type CourseEnrollmentCount struct {
	Title       string `json:"title"`
	Enrollments int64  `json:"enrollments"`
}

// CourseAnalytics is a per-course aggregate row for the instructor's
// analytics page.
type CourseAnalytics struct {
	CourseID      int64   `json:"courseId"`
	Title         string  `json:"title"`
	Students      int64   `json:"students"`
	AvgGrade      float64 `json:"avgGrade"`
	AvgCompletion float64 `json:"avgCompletion"`
}

// EnrolledStudent is a roster row across the instructor's courses.
type EnrolledStudent struct {
	StudentID      int64     `json:"studentId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	CourseTitle    string    `json:"courseTitle"`
	EnrolledAt     time.Time `json:"enrolledAt"`
	CompletionRate float64   `json:"completionRate"`
	AvgGrade       float64   `json:"avgGrade"`
}

// AdminDashboard is the system-wide metric row plus chart feeds.
type AdminDashboard struct {
	ActiveUsers       int64              `json:"activeUsers"`
	ActiveCourses     int64              `json:"activeCourses"`
	TotalEnrollments  int64              `json:"totalEnrollments"`
	TotalRevenue      float64            `json:"totalRevenue"`
	CourseCategories  []CategoryCount    `json:"courseCategories"`
	RecentEnrollments []RecentEnrollment `json:"recentEnrollments"`
}

// CategoryCount feeds the courses-by-category chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// RecentEnrollment is an admin activity-feed entry.
type RecentEnrollment struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	CourseTitle string    `json:"courseTitle"`
	EnrolledAt  time.Time `json:"enrolledAt"`
}

// MonthlyCount is a (month, count) point for growth charts.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// MonthlyAmount is a (month, amount) point for revenue charts.
type MonthlyAmount struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}
