package service

import (
	"database/sql"
	"errors"

	"github.com/noah-isme/course-advising-api/internal/models"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

// storeError keeps typed errors raised by the data layer (validation,
// invariant violations) and wraps anything else as an internal error.
func storeError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// lookupError maps a missing row to a not-found error with notFound as message.
func lookupError(err error, notFound, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return storeError(err, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func pagination(limit, offset, total int) *models.Pagination {
	limit, offset = models.NormalizePage(limit, offset)
	return &models.Pagination{Limit: limit, Offset: offset, TotalCount: total}
}
