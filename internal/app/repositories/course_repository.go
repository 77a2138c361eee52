package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trainly/trainly/internal/app/models"
	"github.com/trainly/trainly/internal/app/models/dto"
	"github.com/trainly/trainly/internal/pkg/apperrors"
	"github.com/trainly/trainly/internal/pkg/helpers"
	"github.com/trainly/trainly/internal/pkg/logger"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetCourseByID retrieves a course by ID
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	sql, args, err := r.sb.Select(
		"id", "instructor_id", "title", "category", "cost", "avg_rating",
		"duration_hours", "syllabus", "status", "created_at").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID, &course.InstructorID, &course.Title, &course.Category,
		&course.Cost, &course.AvgRating, &course.DurationHours,
		&course.Syllabus, &course.Status, &course.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// BrowseCatalog lists active courses with instructor attribution and
// enrollment counts. Search text is matched as a literal substring; LIKE
// wildcards in user input are escaped rather than interpreted.
func (r *CourseRepository) BrowseCatalog(ctx context.Context, req dto.BrowseCoursesRequest) ([]dto.CatalogCourse, error) {
	builder := r.sb.Select(
		"c.id", "c.title", "c.category", "c.cost", "c.avg_rating",
		"c.duration_hours", "c.syllabus",
		"COUNT(DISTINCT e.student_id) AS enrollments",
		"u.first_name || ' ' || u.last_name AS instructor_name",
		"f.title AS instructor_title",
	).
		From("courses c").
		Join("faculty f ON c.instructor_id = f.id").
		Join("users u ON f.user_id = u.id").
		LeftJoin("enrollments e ON c.id = e.course_id").
		Where(squirrel.Eq{"c.status": models.CourseActive})

	if req.Category != "" {
		builder = builder.Where(squirrel.Eq{"c.category": req.Category})
	}

	if req.Search != "" {
		pattern := "%" + helpers.EscapeLike(req.Search) + "%"
		builder = builder.Where(squirrel.Expr(`c.title ILIKE ? ESCAPE '\'`, pattern))
	}

	builder = builder.GroupBy(
		"c.id", "c.title", "c.category", "c.cost", "c.avg_rating",
		"c.duration_hours", "c.syllabus", "u.first_name", "u.last_name", "f.title")

	switch req.Sort {
	case dto.SortHighestRated:
		builder = builder.OrderBy("c.avg_rating DESC")
	case dto.SortNewest:
		builder = builder.OrderBy("c.created_at DESC")
	default:
		builder = builder.OrderBy("enrollments DESC")
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build browse catalog query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing browse catalog query")
		return nil, fmt.Errorf("error querying catalog: %w", err)
	}
	defer rows.Close()

	var courses []dto.CatalogCourse
	for rows.Next() {
		var c dto.CatalogCourse
		err := rows.Scan(
			&c.CourseID, &c.Title, &c.Category, &c.Cost, &c.AvgRating,
			&c.DurationHours, &c.Syllabus, &c.Enrollments,
			&c.InstructorName, &c.InstructorTitle)
		if err != nil {
			return nil, fmt.Errorf("error scanning catalog row: %w", err)
		}
		c.Cost = helpers.NonNegative(c.Cost)
		c.AvgRating = helpers.NonNegative(c.AvgRating)
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

// ListCategories returns the distinct categories of active courses.
func (r *CourseRepository) ListCategories(ctx context.Context) ([]string, error) {
	sql, args, err := r.sb.Select("DISTINCT category").
		From("courses").
		Where(squirrel.Eq{"status": models.CourseActive}).
		Where(squirrel.NotEq{"category": ""}).
		OrderBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list categories query")
		return nil, fmt.Errorf("error querying categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// ListByInstructor lists all courses owned by a faculty member with
// enrollment counts, most enrolled first.
func (r *CourseRepository) ListByInstructor(ctx context.Context, facultyID int64) ([]dto.InstructorCourse, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.title", "c.category", "c.status", "c.avg_rating",
		"COUNT(DISTINCT e.student_id) AS enrollments").
		From("courses c").
		LeftJoin("enrollments e ON c.id = e.course_id").
		Where(squirrel.Eq{"c.instructor_id": facultyID}).
		GroupBy("c.id", "c.title", "c.category", "c.status", "c.avg_rating").
		OrderBy("enrollments DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build instructor courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", facultyID).Msg("Error executing instructor courses query")
		return nil, fmt.Errorf("error querying instructor courses: %w", err)
	}
	defer rows.Close()

	var courses []dto.InstructorCourse
	for rows.Next() {
		var c dto.InstructorCourse
		if err := rows.Scan(&c.CourseID, &c.Title, &c.Category, &c.Status, &c.AvgRating, &c.Enrollments); err != nil {
			return nil, fmt.Errorf("error scanning instructor course row: %w", err)
		}
		c.AvgRating = helpers.NonNegative(c.AvgRating)
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

// ListAll lists every course regardless of status for the admin view.
func (r *CourseRepository) ListAll(ctx context.Context) ([]dto.AdminCourse, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.title", "c.category", "c.status", "c.cost", "c.avg_rating",
		"u.first_name || ' ' || u.last_name AS instructor",
		"COUNT(DISTINCT e.student_id) AS enrollments",
		"c.created_at").
		From("courses c").
		Join("faculty f ON c.instructor_id = f.id").
		Join("users u ON f.user_id = u.id").
		LeftJoin("enrollments e ON c.id = e.course_id").
		GroupBy("c.id", "c.title", "c.category", "c.status", "c.cost",
			"c.avg_rating", "u.first_name", "u.last_name", "c.created_at").
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	var courses []dto.AdminCourse
	for rows.Next() {
		var c dto.AdminCourse
		err := rows.Scan(&c.CourseID, &c.Title, &c.Category, &c.Status,
			&c.Cost, &c.AvgRating, &c.Instructor, &c.Enrollments, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		c.Cost = helpers.NonNegative(c.Cost)
		c.AvgRating = helpers.NonNegative(c.AvgRating)
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

// OwnedByFaculty reports whether the course belongs to the faculty member.
func (r *CourseRepository) OwnedByFaculty(ctx context.Context, courseID, facultyID int64) (bool, error) {
	var owned bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1 AND instructor_id = $2)`,
		courseID, facultyID).Scan(&owned)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Int64("facultyID", facultyID).Msg("Error checking course ownership")
		return false, fmt.Errorf("error checking course ownership: %w", err)
	}
	return owned, nil
}
