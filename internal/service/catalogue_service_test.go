package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-advising-api/internal/models"
)

func TestCategoryServiceCreate(t *testing.T) {
	ctx := context.Background()
	repo := newMockCategoryRepo(models.Category{ID: 1, Name: "Computer Science", Prefix: "CS"})
	svc := NewCategoryService(repo, nil, nil)

	created, err := svc.Create(ctx, CreateCategoryRequest{Name: " Mathematics ", Prefix: " math"})
	require.NoError(t, err)
	assert.Equal(t, "MATH", created.Prefix)
	assert.Equal(t, "Mathematics", created.Name)

	_, err = svc.Create(ctx, CreateCategoryRequest{Name: "Dup", Prefix: "cs"})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.Create(ctx, CreateCategoryRequest{Prefix: "PHYS"})
	requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, 1, repo.created)
}

func TestCategoryServiceUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newMockCategoryRepo(
		models.Category{ID: 1, Name: "Computer Science", Prefix: "CS"},
		models.Category{ID: 2, Name: "Mathematics", Prefix: "MATH"},
	)
	svc := NewCategoryService(repo, nil, nil)

	same := "cs"
	updated, err := svc.Update(ctx, 1, UpdateCategoryRequest{Prefix: &same})
	require.NoError(t, err)
	assert.Equal(t, "CS", updated.Prefix)

	taken := "math"
	_, err = svc.Update(ctx, 1, UpdateCategoryRequest{Prefix: &taken})
	requireStatus(t, err, http.StatusConflict)

	name := "CompSci"
	_, err = svc.Update(ctx, 99, UpdateCategoryRequest{Name: &name})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.Update(ctx, 1, UpdateCategoryRequest{})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestCategoryServiceGetAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newMockCategoryRepo(models.Category{ID: 1, Name: "Computer Science", Prefix: "CS"})
	svc := NewCategoryService(repo, nil, nil)

	_, err := svc.Get(ctx, 5)
	requireStatus(t, err, http.StatusNotFound)

	deleted, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "CS", deleted.Prefix)

	_, err = svc.Delete(ctx, 1)
	requireStatus(t, err, http.StatusNotFound)
}

func TestSemesterServiceCreate(t *testing.T) {
	ctx := context.Background()
	repo := newMockSemesterRepo(models.Semester{ID: 1, Year: 2024, Type: models.SemesterFall})
	svc := NewSemesterService(repo, nil, nil)

	created, err := svc.Create(ctx, CreateSemesterRequest{Year: 2025, Type: models.SemesterSpring})
	require.NoError(t, err)
	assert.Equal(t, 2025, created.Year)

	_, err = svc.Create(ctx, CreateSemesterRequest{Year: 2024, Type: models.SemesterFall})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.Create(ctx, CreateSemesterRequest{Year: 2025, Type: "autumn"})
	appErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, semesterTypeMessage, appErr.Message)

	_, err = svc.Create(ctx, CreateSemesterRequest{Type: models.SemesterWinter})
	requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, 1, repo.created)
}

func TestSemesterServiceUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newMockSemesterRepo(
		models.Semester{ID: 1, Year: 2024, Type: models.SemesterFall},
		models.Semester{ID: 2, Year: 2025, Type: models.SemesterSpring},
	)
	svc := NewSemesterService(repo, nil, nil)

	year := 2025
	_, err := svc.Update(ctx, 1, UpdateSemesterRequest{Year: &year})
	require.NoError(t, err)

	spring := models.SemesterSpring
	_, err = svc.Update(ctx, 1, UpdateSemesterRequest{Type: &spring})
	requireStatus(t, err, http.StatusConflict)

	bad := models.SemesterType("monsoon")
	_, err = svc.Update(ctx, 1, UpdateSemesterRequest{Type: &bad})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.Update(ctx, 42, UpdateSemesterRequest{Year: &year})
	requireStatus(t, err, http.StatusNotFound)
}

func TestSemesterServiceListValidatesType(t *testing.T) {
	svc := NewSemesterService(newMockSemesterRepo(), nil, nil)
	bad := models.SemesterType("monsoon")
	_, _, err := svc.List(context.Background(), models.SemesterFilter{Type: &bad})
	requireStatus(t, err, http.StatusBadRequest)
}
