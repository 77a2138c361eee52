package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/pkg/apperrors"
)

type enrollmentKey struct {
	studentID int64
	courseID  int64
}

type fakeEnrollmentStore struct {
	enrollments map[enrollmentKey]*models.Enrollment
	analytics   map[enrollmentKey]bool
	active      []dto.ActiveCourse
	completed   []dto.CompletedCourse
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		enrollments: make(map[enrollmentKey]*models.Enrollment),
		analytics:   make(map[enrollmentKey]bool),
	}
}

func (f *fakeEnrollmentStore) Exists(_ context.Context, studentID, courseID int64) (bool, error) {
	_, ok := f.enrollments[enrollmentKey{studentID, courseID}]
	return ok, nil
}

func (f *fakeEnrollmentStore) CreateTx(_ context.Context, _ pgx.Tx, enrollment *models.Enrollment) error {
	key := enrollmentKey{enrollment.StudentID, enrollment.CourseID}
	if _, ok := f.enrollments[key]; ok {
		return apperrors.ErrAlreadyEnrolled
	}
	f.enrollments[key] = enrollment
	return nil
}

func (f *fakeEnrollmentStore) CreateAnalyticsTx(_ context.Context, _ pgx.Tx, studentID, courseID int64) error {
	f.analytics[enrollmentKey{studentID, courseID}] = true
	return nil
}

func (f *fakeEnrollmentStore) ListActive(_ context.Context, _ int64) ([]dto.ActiveCourse, error) {
	return f.active, nil
}

func (f *fakeEnrollmentStore) ListCompleted(_ context.Context, _ int64) ([]dto.CompletedCourse, error) {
	return f.completed, nil
}

func (f *fakeEnrollmentStore) GetEnrollment(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if e, ok := f.enrollments[enrollmentKey{studentID, courseID}]; ok {
		return e, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) SetRating(_ context.Context, _ pgx.Tx, studentID, courseID int64, rating int) error {
	e, ok := f.enrollments[enrollmentKey{studentID, courseID}]
	if !ok || !e.Certified {
		return apperrors.ErrEnrollmentNotFound
	}
	e.Rating = &rating
	return nil
}

type fakeCourseGetter struct {
	courses map[int64]*models.Course
}

func (f *fakeCourseGetter) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func newTestEnrollmentService(store *fakeEnrollmentStore, courses *fakeCourseGetter) *EnrollmentService {
	return NewEnrollmentService(store, courses, passthroughTx, zerolog.Nop())
}

func activeCourseFixture(id int64) *fakeCourseGetter {
	return &fakeCourseGetter{courses: map[int64]*models.Course{
		id: {ID: id, Title: "Go Fundamentals", Status: models.CourseActive},
	}}
}

func TestEnroll(t *testing.T) {
	store := newFakeEnrollmentStore()
	svc := newTestEnrollmentService(store, activeCourseFixture(7))

	resp, err := svc.Enroll(context.Background(), 3, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.CourseID)
	assert.Equal(t, fmt.Sprintf("ENR%d%d", 7, 3), resp.EnrollCode)
	assert.False(t, resp.EnrolledAt.IsZero())

	// analytics row is seeded together with the enrollment
	assert.True(t, store.analytics[enrollmentKey{3, 7}])
}

func TestEnroll_AlreadyEnrolled(t *testing.T) {
	store := newFakeEnrollmentStore()
	svc := newTestEnrollmentService(store, activeCourseFixture(7))

	_, err := svc.Enroll(context.Background(), 3, 7)
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), 3, 7)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
}

func TestEnroll_InactiveCourse(t *testing.T) {
	courses := &fakeCourseGetter{courses: map[int64]*models.Course{
		9: {ID: 9, Status: models.CourseArchived},
	}}
	svc := newTestEnrollmentService(newFakeEnrollmentStore(), courses)

	_, err := svc.Enroll(context.Background(), 3, 9)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotActive)
}

func TestEnroll_UnknownCourse(t *testing.T) {
	svc := newTestEnrollmentService(newFakeEnrollmentStore(), &fakeCourseGetter{courses: map[int64]*models.Course{}})

	_, err := svc.Enroll(context.Background(), 3, 99)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestRateCourse(t *testing.T) {
	store := newFakeEnrollmentStore()
	store.enrollments[enrollmentKey{3, 7}] = &models.Enrollment{StudentID: 3, CourseID: 7, Certified: true}
	svc := newTestEnrollmentService(store, activeCourseFixture(7))

	require.NoError(t, svc.RateCourse(context.Background(), 3, 7, 4))
	require.NotNil(t, store.enrollments[enrollmentKey{3, 7}].Rating)
	assert.Equal(t, 4, *store.enrollments[enrollmentKey{3, 7}].Rating)
}

func TestRateCourse_RangeValidation(t *testing.T) {
	svc := newTestEnrollmentService(newFakeEnrollmentStore(), activeCourseFixture(7))

	for _, rating := range []int{0, -1, 6} {
		err := svc.RateCourse(context.Background(), 3, 7, rating)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "rating %d must be rejected", rating)
	}
}

func TestRateCourse_NotCompleted(t *testing.T) {
	store := newFakeEnrollmentStore()
	store.enrollments[enrollmentKey{3, 7}] = &models.Enrollment{StudentID: 3, CourseID: 7, Certified: false}
	svc := newTestEnrollmentService(store, activeCourseFixture(7))

	err := svc.RateCourse(context.Background(), 3, 7, 5)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}
