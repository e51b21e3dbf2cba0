package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-advising-api/internal/middleware"
	"github.com/noah-isme/course-advising-api/internal/models"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

// actorFromContext returns the registered user attached by middleware.CurrentUser.
func actorFromContext(c *gin.Context) (*models.User, bool) {
	return middleware.UserFrom(c)
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, name+" must be a positive integer")
	}
	return id, nil
}

// page reads limit and offset query parameters. Malformed values fall back to defaults.
func page(c *gin.Context) (limit, offset int) {
	if v, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil {
		offset = v
	}
	return models.NormalizePage(limit, offset)
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
}
