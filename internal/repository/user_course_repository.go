package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/pkg/sqlfrag"
)

var userCoursesTable = sqlfrag.NewTable("user_courses", "", "user_id", "course_id", "semester_id", "taken")

// UserCourseKey identifies one enrollment.
type UserCourseKey struct {
	UserID     int64
	CourseID   int64
	SemesterID int64
}

func (k UserCourseKey) criteria() sqlfrag.Criteria {
	return sqlfrag.Criteria{
		{Column: "user_id", Value: k.UserID},
		{Column: "course_id", Value: k.CourseID},
		{Column: "semester_id", Value: k.SemesterID},
	}
}

// UserCourseRepository persists the user/course/semester association.
type UserCourseRepository struct {
	db       *sqlx.DB
	store    tableStore[models.UserCourse]
	observer QueryObserver
}

// NewUserCourseRepository instantiates a user-course repository.
func NewUserCourseRepository(db *sqlx.DB, opts ...Option) *UserCourseRepository {
	var cfg storeOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	return &UserCourseRepository{
		db:       db,
		store:    newTableStore[models.UserCourse](db, userCoursesTable, opts, "user_id", "course_id", "semester_id"),
		observer: cfg.observer,
	}
}

// Find loads one enrollment.
func (r *UserCourseRepository) Find(ctx context.Context, key UserCourseKey) (*models.UserCourse, error) {
	return r.store.FindOne(ctx, key.criteria())
}

// Exists reports whether the enrollment is already recorded.
func (r *UserCourseRepository) Exists(ctx context.Context, key UserCourseKey) (bool, error) {
	if _, err := r.Find(ctx, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns enrollments matching the filter with total count.
func (r *UserCourseRepository) List(ctx context.Context, filter models.UserCourseFilter) ([]models.UserCourse, int, error) {
	criteria := sqlfrag.Criteria{{Column: "user_id", Value: filter.UserID}}
	if filter.SemesterID != nil {
		criteria = criteria.Add("semester_id", *filter.SemesterID)
	}
	if filter.Taken != nil {
		criteria = criteria.Add("taken", *filter.Taken)
	}

	rows, err := r.store.FindAll(ctx, criteria, "", filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.store.Count(ctx, criteria, "")
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Create records an enrollment.
func (r *UserCourseRepository) Create(ctx context.Context, uc *models.UserCourse) (*models.UserCourse, error) {
	return r.store.Create(ctx, sqlfrag.Criteria{
		{Column: "user_id", Value: uc.UserID},
		{Column: "course_id", Value: uc.CourseID},
		{Column: "semester_id", Value: uc.SemesterID},
		{Column: "taken", Value: uc.Taken},
	})
}

// SetTaken marks an enrollment as planned or completed.
func (r *UserCourseRepository) SetTaken(ctx context.Context, key UserCourseKey, taken bool) (*models.UserCourse, error) {
	return r.store.UpdateWhere(ctx, key.criteria(), sqlfrag.Criteria{{Column: "taken", Value: taken}})
}

// Delete removes an enrollment.
func (r *UserCourseRepository) Delete(ctx context.Context, key UserCourseKey) (*models.UserCourse, error) {
	return r.store.DeleteWhere(ctx, key.criteria())
}

// Schedule returns a user's enrollments joined with course, category and
// semester, ordered by year then season.
func (r *UserCourseRepository) Schedule(ctx context.Context, userID int64) ([]models.ScheduleRow, error) {
	const query = `SELECT s.id AS semester_id, s.year, s.type, c.id AS course_id, c.name, c.section, c.credits,
COALESCE(cat.prefix, '') AS category_prefix, uc.taken
FROM user_courses uc
JOIN courses c ON c.id = uc.course_id
JOIN semesters s ON s.id = uc.semester_id
LEFT JOIN course_categories cc ON cc.course_id = c.id
LEFT JOIN categories cat ON cat.id = cc.category_id
WHERE uc.user_id = $1
ORDER BY s.year, CASE s.type WHEN 'winter' THEN 0 WHEN 'spring' THEN 1 WHEN 'summer' THEN 2 ELSE 3 END, s.id, c.name`

	start := time.Now()
	rows := []models.ScheduleRow{}
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	if r.observer != nil {
		r.observer.ObserveDBQuery("schedule_user_courses", time.Since(start))
	}
	return rows, nil
}
