package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/pkg/sqlfrag"
)

var (
	coursesTable         = sqlfrag.NewTable("courses", "name", "id", "name", "section", "credits")
	courseCategoryTable  = sqlfrag.NewTable("course_categories", "", "course_id", "category_id")
	courseSemestersTable = sqlfrag.NewTable("course_semesters", "", "course_id", "semester_id")
)

const courseDetailSelect = `SELECT c.id, c.name, c.section, c.credits, COALESCE(cat.prefix, '') AS category_prefix, COALESCE(cat.name, '') AS category_name
FROM courses c
LEFT JOIN course_categories cc ON cc.course_id = c.id
LEFT JOIN categories cat ON cat.id = cc.category_id`

// CourseRepository handles persistence for courses and their category/semester links.
type CourseRepository struct {
	db        *sqlx.DB
	store     tableStore[models.Course]
	category  tableStore[models.CourseCategory]
	semesters tableStore[models.CourseSemester]
	observer  QueryObserver
}

// NewCourseRepository instantiates a course repository.
func NewCourseRepository(db *sqlx.DB, opts ...Option) *CourseRepository {
	var cfg storeOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	return &CourseRepository{
		db:        db,
		store:     newTableStore[models.Course](db, coursesTable, opts, "name", "section"),
		category:  newTableStore[models.CourseCategory](db, courseCategoryTable, opts, "course_id", "category_id"),
		semesters: newTableStore[models.CourseSemester](db, courseSemestersTable, opts, "course_id", "semester_id"),
		observer:  cfg.observer,
	}
}

func (r *CourseRepository) observe(label string, start time.Time) {
	if r.observer != nil {
		r.observer.ObserveDBQuery(label, time.Since(start))
	}
}

// FindByID loads a bare course row.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	return r.store.FindOne(ctx, sqlfrag.Criteria{{Column: "id", Value: id}})
}

// FindDetailed loads a course with its category and offering semesters.
func (r *CourseRepository) FindDetailed(ctx context.Context, id int64) (*models.CourseDetail, error) {
	start := time.Now()
	var course models.CourseDetail
	if err := r.db.GetContext(ctx, &course, courseDetailSelect+" WHERE c.id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find course detail: %w", err)
	}
	r.observe("find_course_detail", start)

	semesters, err := r.semestersFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	course.Semesters = semesters[id]
	if course.Semesters == nil {
		course.Semesters = []models.Semester{}
	}
	return &course, nil
}

// List returns detailed courses matching the filter with total count.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error) {
	var conditions []string
	var args []interface{}
	if filter.Search != "" {
		args = append(args, filter.Search)
		conditions = append(conditions, fmt.Sprintf("c.name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("cat.prefix = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit, offset := models.NormalizePage(filter.Limit, filter.Offset)
	query := sqlfrag.Join(courseDetailSelect, where, fmt.Sprintf("ORDER BY c.id LIMIT %d OFFSET %d", limit, offset))

	start := time.Now()
	courses := []models.CourseDetail{}
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	r.observe("list_course_detail", start)

	countQuery := sqlfrag.Join(`SELECT COUNT(*) FROM courses c
LEFT JOIN course_categories cc ON cc.course_id = c.id
LEFT JOIN categories cat ON cat.id = cc.category_id`, where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	if len(courses) == 0 {
		return courses, total, nil
	}

	ids := make([]int64, len(courses))
	for i := range courses {
		ids[i] = courses[i].ID
	}
	semesters, err := r.semestersFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range courses {
		courses[i].Semesters = semesters[courses[i].ID]
		if courses[i].Semesters == nil {
			courses[i].Semesters = []models.Semester{}
		}
	}
	return courses, total, nil
}

func (r *CourseRepository) semestersFor(ctx context.Context, courseIDs []int64) (map[int64][]models.Semester, error) {
	const query = `SELECT cs.course_id, s.id, s.year, s.type
FROM course_semesters cs
JOIN semesters s ON s.id = cs.semester_id
WHERE cs.course_id = ANY($1)
ORDER BY s.year, s.id`

	type offering struct {
		CourseID int64 `db:"course_id"`
		models.Semester
	}

	start := time.Now()
	var rows []offering
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(courseIDs)); err != nil {
		return nil, fmt.Errorf("list course semesters: %w", err)
	}
	r.observe("list_course_semesters", start)

	result := make(map[int64][]models.Semester, len(courseIDs))
	for _, row := range rows {
		result[row.CourseID] = append(result[row.CourseID], row.Semester)
	}
	return result, nil
}

// Create inserts a course row.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	return r.store.Create(ctx, sqlfrag.Criteria{
		{Column: "name", Value: course.Name},
		{Column: "section", Value: course.Section},
		{Column: "credits", Value: course.Credits},
	})
}

// Update applies the patch to a course row.
func (r *CourseRepository) Update(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error) {
	var attrs sqlfrag.Criteria
	if patch.Name != nil {
		attrs = attrs.Add("name", *patch.Name)
	}
	if patch.Section != nil {
		attrs = attrs.Add("section", *patch.Section)
	}
	if patch.Credits != nil {
		attrs = attrs.Add("credits", *patch.Credits)
	}
	return r.store.Update(ctx, id, attrs)
}

// Delete removes a course.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (*models.Course, error) {
	return r.store.Delete(ctx, id)
}

// SetCategory replaces the category link of a course.
func (r *CourseRepository) SetCategory(ctx context.Context, courseID, categoryID int64) (*models.CourseCategory, error) {
	start := time.Now()
	if _, err := r.db.ExecContext(ctx, `DELETE FROM course_categories WHERE course_id = $1`, courseID); err != nil {
		return nil, fmt.Errorf("clear course category: %w", err)
	}
	r.observe("clear_course_category", start)

	return r.category.Create(ctx, sqlfrag.Criteria{
		{Column: "course_id", Value: courseID},
		{Column: "category_id", Value: categoryID},
	})
}

// AddSemester records that a course is offered in a semester.
func (r *CourseRepository) AddSemester(ctx context.Context, courseID, semesterID int64) (*models.CourseSemester, error) {
	return r.semesters.Create(ctx, sqlfrag.Criteria{
		{Column: "course_id", Value: courseID},
		{Column: "semester_id", Value: semesterID},
	})
}

// RemoveSemester drops a course offering.
func (r *CourseRepository) RemoveSemester(ctx context.Context, courseID, semesterID int64) (*models.CourseSemester, error) {
	return r.semesters.DeleteWhere(ctx, sqlfrag.Criteria{
		{Column: "course_id", Value: courseID},
		{Column: "semester_id", Value: semesterID},
	})
}

// OfferedIn reports whether a course is offered in a semester.
func (r *CourseRepository) OfferedIn(ctx context.Context, courseID, semesterID int64) (bool, error) {
	_, err := r.semesters.FindOne(ctx, sqlfrag.Criteria{
		{Column: "course_id", Value: courseID},
		{Column: "semester_id", Value: semesterID},
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
