package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
)

// CourseStore is the course persistence surface the catalog needs.
type CourseStore interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	BrowseCatalog(ctx context.Context, req dto.BrowseCoursesRequest) ([]dto.CatalogCourse, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListByInstructor(ctx context.Context, facultyID int64) ([]dto.InstructorCourse, error)
	ListAll(ctx context.Context) ([]dto.AdminCourse, error)
}

// CourseService serves the course catalog and the per-role course views.
type CourseService struct {
	courses CourseStore
	logger  zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, logger zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, logger: logger}
}

// Browse lists active courses filtered and sorted per the request.
func (s *CourseService) Browse(ctx context.Context, req dto.BrowseCoursesRequest) ([]dto.CatalogCourse, error) {
	switch req.Sort {
	case dto.SortMostPopular, dto.SortHighestRated, dto.SortNewest:
	default:
		req.Sort = dto.SortMostPopular
	}
	return s.courses.BrowseCatalog(ctx, req)
}

// Categories lists the distinct active course categories.
func (s *CourseService) Categories(ctx context.Context) ([]string, error) {
	return s.courses.ListCategories(ctx)
}

// GetCourse returns a single course.
func (s *CourseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courses.GetCourseByID(ctx, id)
}

// InstructorCourses lists the calling instructor's courses.
func (s *CourseService) InstructorCourses(ctx context.Context, facultyID int64) ([]dto.InstructorCourse, error) {
	return s.courses.ListByInstructor(ctx, facultyID)
}

// AllCourses lists every course for the admin view.
func (s *CourseService) AllCourses(ctx context.Context) ([]dto.AdminCourse, error) {
	return s.courses.ListAll(ctx)
}
