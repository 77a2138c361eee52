package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	courses    map[int64]*models.Course
	catalog    []dto.CatalogCourse
	categories []string

	lastBrowse dto.BrowseCoursesRequest
}

func (f *fakeCourseStore) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) BrowseCatalog(_ context.Context, req dto.BrowseCoursesRequest) ([]dto.CatalogCourse, error) {
	f.lastBrowse = req
	return f.catalog, nil
}

func (f *fakeCourseStore) ListCategories(_ context.Context) ([]string, error) {
	return f.categories, nil
}

func (f *fakeCourseStore) ListByInstructor(_ context.Context, _ int64) ([]dto.InstructorCourse, error) {
	return nil, nil
}

func (f *fakeCourseStore) ListAll(_ context.Context) ([]dto.AdminCourse, error) {
	return nil, nil
}

func TestBrowse_SortWhitelist(t *testing.T) {
	store := &fakeCourseStore{}
	svc := NewCourseService(store, zerolog.Nop())

	tests := []struct {
		name string
		in   dto.CourseSort
		want dto.CourseSort
	}{
		{"popular", dto.SortMostPopular, dto.SortMostPopular},
		{"rating", dto.SortHighestRated, dto.SortHighestRated},
		{"newest", dto.SortNewest, dto.SortNewest},
		{"empty falls back", "", dto.SortMostPopular},
		{"garbage falls back", "price; DROP TABLE courses", dto.SortMostPopular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Browse(context.Background(), dto.BrowseCoursesRequest{Sort: tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, store.lastBrowse.Sort)
		})
	}
}

func TestGetCourse(t *testing.T) {
	store := &fakeCourseStore{courses: map[int64]*models.Course{
		7: {ID: 7, Title: "Go Fundamentals", Status: models.CourseActive},
	}}
	svc := NewCourseService(store, zerolog.Nop())

	course, err := svc.GetCourse(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Go Fundamentals", course.Title)

	_, err = svc.GetCourse(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCategories(t *testing.T) {
	store := &fakeCourseStore{categories: []string{"design", "programming"}}
	svc := NewCourseService(store, zerolog.Nop())

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"design", "programming"}, categories)
}
