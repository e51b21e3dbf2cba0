package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-advising-api/internal/models"
)

func newUserCourseFixture(items ...models.UserCourse) (*UserCourseService, *mockUserCourseRepo) {
	repo := newMockUserCourseRepo(items...)
	users := newMockUserRepo(*student, *director)
	courses := newMockCourseRepo(models.Course{ID: 5, Name: "Algorithms", Section: "001", Credits: 4})
	semesters := newMockSemesterRepo(models.Semester{ID: 1, Year: 2024, Type: models.SemesterFall})
	return NewUserCourseService(repo, users, courses, semesters, nil, nil), repo
}

func boolPtr(v bool) *bool { return &v }

func TestUserCourseServiceAdd(t *testing.T) {
	ctx := context.Background()
	svc, repo := newUserCourseFixture()

	uc, err := svc.Add(ctx, student, UserCourseRequest{CourseID: 5, SemesterID: 1})
	require.NoError(t, err)
	assert.Equal(t, student.ID, uc.UserID)
	assert.False(t, uc.Taken)

	_, err = svc.Add(ctx, student, UserCourseRequest{CourseID: 5, SemesterID: 1})
	requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, 1, repo.created)

	_, err = svc.Add(ctx, student, UserCourseRequest{CourseID: 6, SemesterID: 1})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.Add(ctx, student, UserCourseRequest{CourseID: 5, SemesterID: 9})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.Add(ctx, student, UserCourseRequest{SemesterID: 1})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestUserCourseServiceActingOnOthers(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserCourseFixture()

	_, err := svc.Add(ctx, student, UserCourseRequest{UserID: director.ID, CourseID: 5, SemesterID: 1})
	requireStatus(t, err, http.StatusForbidden)

	uc, err := svc.Add(ctx, director, UserCourseRequest{UserID: student.ID, CourseID: 5, SemesterID: 1, Taken: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, student.ID, uc.UserID)
	assert.True(t, uc.Taken)

	_, err = svc.Add(ctx, director, UserCourseRequest{UserID: 404, CourseID: 5, SemesterID: 1})
	requireStatus(t, err, http.StatusNotFound)
}

func TestUserCourseServiceSetTakenAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, repo := newUserCourseFixture(models.UserCourse{UserID: student.ID, CourseID: 5, SemesterID: 1})

	_, err := svc.SetTaken(ctx, student, UserCourseRequest{CourseID: 5, SemesterID: 1})
	requireStatus(t, err, http.StatusBadRequest)

	uc, err := svc.SetTaken(ctx, student, UserCourseRequest{CourseID: 5, SemesterID: 1, Taken: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, uc.Taken)

	_, err = svc.SetTaken(ctx, student, UserCourseRequest{CourseID: 6, SemesterID: 1, Taken: boolPtr(true)})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.Remove(ctx, student, UserCourseRequest{CourseID: 5, SemesterID: 1})
	require.NoError(t, err)
	assert.Empty(t, repo.items)

	_, err = svc.Remove(ctx, student, UserCourseRequest{CourseID: 5, SemesterID: 1})
	requireStatus(t, err, http.StatusNotFound)
}

func TestUserCourseServiceListDefaultsToActor(t *testing.T) {
	svc, repo := newUserCourseFixture(models.UserCourse{UserID: student.ID, CourseID: 5, SemesterID: 1})

	items, page, err := svc.List(context.Background(), student, models.UserCourseFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, student.ID, repo.filter.UserID)
	assert.Equal(t, 1, page.TotalCount)

	_, _, err = svc.List(context.Background(), student, models.UserCourseFilter{UserID: director.ID})
	requireStatus(t, err, http.StatusForbidden)
}
