package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/pkg/export"
)

func scheduleRows() []models.ScheduleRow {
	return []models.ScheduleRow{
		{SemesterID: 1, Year: 2024, Type: models.SemesterFall, CourseID: 5, Name: "Algorithms", Section: "001", Credits: 4, CategoryPrefix: "CS", Taken: true},
		{SemesterID: 1, Year: 2024, Type: models.SemesterFall, CourseID: 6, Name: "Databases", Section: "002", Credits: 3, CategoryPrefix: "CS"},
		{SemesterID: 2, Year: 2025, Type: models.SemesterWinter, CourseID: 7, Name: "Calculus", Section: "A", Credits: 3, CategoryPrefix: "MATH"},
	}
}

func TestGroupSchedule(t *testing.T) {
	schedule := GroupSchedule(1, scheduleRows())
	require.Len(t, schedule.Semesters, 2)
	assert.Equal(t, 7, schedule.Semesters[0].Credits)
	assert.Len(t, schedule.Semesters[0].Courses, 2)
	assert.Equal(t, models.SemesterWinter, schedule.Semesters[1].Semester.Type)
	assert.Equal(t, 10, schedule.TotalCredits)
	assert.Equal(t, 4, schedule.TakenCredits)

	empty := GroupSchedule(1, nil)
	assert.NotNil(t, empty.Semesters)
	assert.Zero(t, empty.TotalCredits)
}

func TestScheduleServiceExport(t *testing.T) {
	repo := newMockUserCourseRepo()
	repo.rows = scheduleRows()
	svc := NewScheduleService(repo, newMockUserRepo(*student, *director), nil)
	ctx := context.Background()

	doc, err := svc.Export(ctx, student, 0, export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "schedule-1.csv", doc.Filename)
	assert.Contains(t, string(doc.Body), "Algorithms")
	assert.Contains(t, string(doc.Body), "Total credits: 10 (taken 4)")

	_, err = svc.Export(ctx, student, 0, export.FormatJSON)
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Export(ctx, student, director.ID, export.FormatPDF)
	requireStatus(t, err, http.StatusForbidden)

	schedule, err := svc.Build(ctx, director, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, schedule.UserID)
}
