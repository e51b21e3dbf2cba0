package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/internal/service"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
	"github.com/noah-isme/course-advising-api/pkg/response"
)

type userCourseService interface {
	List(ctx context.Context, actor *models.User, filter models.UserCourseFilter) ([]models.UserCourse, *models.Pagination, error)
	Add(ctx context.Context, actor *models.User, req service.UserCourseRequest) (*models.UserCourse, error)
	SetTaken(ctx context.Context, actor *models.User, req service.UserCourseRequest) (*models.UserCourse, error)
	Remove(ctx context.Context, actor *models.User, req service.UserCourseRequest) (*models.UserCourse, error)
}

// UserCourseHandler exposes a user's planned and taken courses.
type UserCourseHandler struct {
	service userCourseService
}

// NewUserCourseHandler constructs a user course handler.
func NewUserCourseHandler(svc userCourseService) *UserCourseHandler {
	return &UserCourseHandler{service: svc}
}

// List godoc
// @Summary List user courses
// @Tags UserCourse
// @Produce json
// @Security BearerAuth
// @Param userId query int false "User ID, defaults to the caller"
// @Param semesterId query int false "Semester filter"
// @Param taken query bool false "Taken filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Router /userCourse [get]
func (h *UserCourseHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var filter models.UserCourseFilter
	filter.Limit, filter.Offset = page(c)
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "userId must be a positive integer"))
			return
		}
		filter.UserID = id
	}
	if id, err := strconv.ParseInt(c.Query("semesterId"), 10, 64); err == nil {
		filter.SemesterID = &id
	}
	if taken, err := strconv.ParseBool(c.Query("taken")); err == nil {
		filter.Taken = &taken
	}

	items, pagination, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Create godoc
// @Summary Plan a course
// @Tags UserCourse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.UserCourseRequest true "User course payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /userCourse [post]
func (h *UserCourseHandler) Create(c *gin.Context) {
	h.handle(c, h.service.Add, http.StatusCreated)
}

// Update godoc
// @Summary Mark a course taken or planned
// @Tags UserCourse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.UserCourseRequest true "User course payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /userCourse [put]
func (h *UserCourseHandler) Update(c *gin.Context) {
	h.handle(c, h.service.SetTaken, http.StatusOK)
}

// Delete godoc
// @Summary Remove a planned course
// @Description Identifies the enrollment from a JSON body or from query parameters
// @Tags UserCourse
// @Produce json
// @Security BearerAuth
// @Param userId query int false "User ID, defaults to the caller"
// @Param courseId query int false "Course ID"
// @Param semesterId query int false "Semester ID"
// @Success 200 {object} response.Envelope
// @Router /userCourse [delete]
func (h *UserCourseHandler) Delete(c *gin.Context) {
	h.handle(c, h.service.Remove, http.StatusOK)
}

type userCourseAction func(ctx context.Context, actor *models.User, req service.UserCourseRequest) (*models.UserCourse, error)

func (h *UserCourseHandler) handle(c *gin.Context, action userCourseAction, status int) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.UserCourseRequest
	var err error
	if hasBody(c.Request) {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	item, err := action(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, status, item, nil)
}

// hasBody reports whether the request carries a body, including chunked
// bodies of unknown length.
func hasBody(r *http.Request) bool {
	return r.Body != nil && r.Body != http.NoBody && r.ContentLength != 0
}
