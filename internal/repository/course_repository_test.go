package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-advising-api/internal/models"
)

var courseDetailColumns = []string{"id", "name", "section", "credits", "category_prefix", "category_name"}

func TestCourseFindDetailed(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(`(?s)SELECT c.id, c.name, c.section, c.credits, .* WHERE c.id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(courseDetailColumns).AddRow(10, "Data Structures", "001", 4, "CS", "Computer Science"))
	mock.ExpectQuery(`FROM course_semesters cs`).
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "id", "year", "type"}).
			AddRow(10, 3, 2025, "fall").
			AddRow(10, 4, 2026, "spring"))

	course, err := repo.FindDetailed(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "CS", course.CategoryPrefix)
	require.Len(t, course.Semesters, 2)
	assert.Equal(t, models.SemesterFall, course.Semesters[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseListFiltersByCategory(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(`WHERE c.name ILIKE '%' \|\| \$1 \|\| '%' AND cat.prefix = \$2 ORDER BY c.id LIMIT 100 OFFSET 0`).
		WithArgs("data", "CS").
		WillReturnRows(sqlmock.NewRows(courseDetailColumns).AddRow(10, "Data Structures", "001", 4, "CS", "Computer Science"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM courses c`)).
		WithArgs("data", "CS").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM course_semesters cs`).
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "id", "year", "type"}))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{Search: "data", Category: "CS"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, 1, total)
	assert.NotNil(t, courses[0].Semesters)
	assert.Empty(t, courses[0].Semesters)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseSetCategoryReplacesLink(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM course_categories WHERE course_id = $1`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO course_categories ("course_id","category_id") VALUES ($1,$2) RETURNING course_id, category_id`)).
		WithArgs(int64(10), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "category_id"}).AddRow(10, 2))

	link, err := repo.SetCategory(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), link.CategoryID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseOfferedIn(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT course_id, semester_id FROM course_semesters WHERE "course_id"=$1 AND "semester_id"=$2 LIMIT 1`)).
		WithArgs(int64(10), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"course_id", "semester_id"}))

	offered, err := repo.OfferedIn(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.False(t, offered)
	assert.NoError(t, mock.ExpectationsWereMet())
}
