package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-advising-api/internal/middleware"
	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/internal/service"
	"github.com/noah-isme/course-advising-api/internal/session"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
	"github.com/noah-isme/course-advising-api/pkg/export"
	"github.com/noah-isme/course-advising-api/pkg/response"
)

type userService interface {
	Register(ctx context.Context, principal *session.Principal) (*models.User, bool, error)
	Resolve(ctx context.Context, externalID string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error)
	Get(ctx context.Context, actor *models.User, id int64) (*models.User, error)
	Update(ctx context.Context, actor *models.User, id int64, req service.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, actor *models.User, id int64) (*models.User, error)
}

type scheduleService interface {
	Build(ctx context.Context, actor *models.User, userID int64) (*models.Schedule, error)
	Export(ctx context.Context, actor *models.User, userID int64, format export.Format) (*export.Document, error)
}

// UserHandler handles user registration and management endpoints.
type UserHandler struct {
	service   userService
	schedules scheduleService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc userService, schedules scheduleService) *UserHandler {
	return &UserHandler{service: svc, schedules: schedules}
}

// Register godoc
// @Summary Register caller
// @Description Creates the user bound to the session on first call and returns it afterwards
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	user, created, err := h.service.Register(c.Request.Context(), principal)
	if err != nil {
		response.Error(c, err)
		return
	}
	if created {
		response.Created(c, user)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Me godoc
// @Summary Current user
// @Description Returns the registered user for the session, enabled or not
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	user, err := h.service.Resolve(c.Request.Context(), principal.ExternalID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Email substring"
// @Param role query string false "Role filter"
// @Param enabled query bool false "Enabled filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	filter := models.UserFilter{Search: c.Query("search")}
	filter.Limit, filter.Offset = page(c)
	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filter.Role = &r
	}
	if enabled := c.Query("enabled"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			filter.Enabled = &val
		}
	}

	users, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users, pagination)
}

// Get godoc
// @Summary Get user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	user, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Update godoc
// @Summary Update user
// @Description Users may change their own email; admins may change role and enabled
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param payload body service.UpdateUserRequest true "User payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	user, err := h.service.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Delete godoc
// @Summary Delete user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	user, err := h.service.Delete(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Schedule godoc
// @Summary User schedule
// @Description Semester-by-semester plan as JSON or a CSV/PDF download
// @Tags Users
// @Produce json
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param format query string false "json, csv or pdf"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/schedule [get]
func (h *UserHandler) Schedule(c *gin.Context) {
	actor, id, ok := actorAndID(c)
	if !ok {
		return
	}
	format, valid := export.ParseFormat(c.Query("format"))
	if !valid {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be one of json, csv, pdf"))
		return
	}

	if format == export.FormatJSON {
		schedule, err := h.schedules.Build(c.Request.Context(), actor, id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, schedule, nil)
		return
	}

	doc, err := h.schedules.Export(c.Request.Context(), actor, id, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, doc.ContentType, doc.Body)
}

// actorAndID reads the current user and the :id path parameter, writing an
// error response when either is missing.
func actorAndID(c *gin.Context) (*models.User, int64, bool) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, 0, false
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return nil, 0, false
	}
	return actor, id, true
}
