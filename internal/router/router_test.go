package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-advising-api/internal/handler"
	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/internal/service"
	"github.com/noah-isme/course-advising-api/internal/session"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

type countingCategories struct {
	creates int
}

func (m *countingCategories) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, *models.Pagination, error) {
	return []models.Category{}, &models.Pagination{Limit: filter.Limit}, nil
}

func (m *countingCategories) Get(ctx context.Context, id int64) (*models.Category, error) {
	return nil, appErrors.Clone(appErrors.ErrNotFound, "category not found")
}

func (m *countingCategories) Create(ctx context.Context, req service.CreateCategoryRequest) (*models.Category, error) {
	m.creates++
	return &models.Category{ID: 1, Name: req.Name, Prefix: req.Prefix}, nil
}

func (m *countingCategories) Update(ctx context.Context, id int64, req service.UpdateCategoryRequest) (*models.Category, error) {
	return nil, nil
}

func (m *countingCategories) Delete(ctx context.Context, id int64) (*models.Category, error) {
	return nil, nil
}

type users map[string]*models.User

func (u users) Resolve(ctx context.Context, externalID string) (*models.User, error) {
	if user, ok := u[externalID]; ok {
		return user, nil
	}
	return nil, appErrors.Clone(appErrors.ErrForbidden, "user is not registered")
}

func newTestRouter(categories *countingCategories) http.Handler {
	verifier := session.VerifierFunc(func(ctx context.Context, token string) (*session.Principal, error) {
		if token == "expired" {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
		}
		return &session.Principal{ExternalID: token, Email: token + "@uni.edu"}, nil
	})
	known := users{
		"student":  {ID: 1, ExternalID: "student", Enabled: true, Role: models.RoleUser},
		"director": {ID: 2, ExternalID: "director", Enabled: true, Role: models.RoleDirector},
		"pending":  {ID: 3, ExternalID: "pending", Enabled: false, Role: models.RoleUser},
	}
	return New(Options{
		Metrics:           service.NewMetricsService(),
		Verifier:          verifier,
		Users:             known,
		UserHandler:       handler.NewUserHandler(nil, nil),
		CategoryHandler:   handler.NewCategoryHandler(categories),
		SemesterHandler:   handler.NewSemesterHandler(nil),
		CourseHandler:     handler.NewCourseHandler(nil),
		UserCourseHandler: handler.NewUserCourseHandler(nil),
		MetricsHandler:    handler.NewMetricsHandler(service.NewMetricsService(), nil),
	})
}

func do(h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestUserRoleCannotCreateCategory(t *testing.T) {
	categories := &countingCategories{}
	h := newTestRouter(categories)

	w := do(h, http.MethodPost, "/categories", "student", `{"name":"Computer Science","prefix":"CS"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, categories.creates)

	w = do(h, http.MethodPost, "/categories", "director", `{"name":"Computer Science","prefix":"CS"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, categories.creates)
}

func TestAuthenticationLayers(t *testing.T) {
	h := newTestRouter(&countingCategories{})

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/categories", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/categories", "expired", "").Code)
	assert.Equal(t, http.StatusForbidden, do(h, http.MethodGet, "/categories", "stranger", "").Code)
	assert.Equal(t, http.StatusForbidden, do(h, http.MethodGet, "/categories", "pending", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/categories", "student", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/categories/9", "student", "").Code)
}

func TestPublicRoutes(t *testing.T) {
	h := newTestRouter(&countingCategories{})

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/ready", "", "").Code)

	w := do(h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/metrics/summary", "", "").Code)
	assert.Equal(t, http.StatusForbidden, do(h, http.MethodGet, "/metrics/summary", "director", "").Code)
}
