package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-advising-api/internal/models"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

type semesterRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Semester, error)
	FindByYearAndType(ctx context.Context, year int, semesterType models.SemesterType) (*models.Semester, error)
	List(ctx context.Context, filter models.SemesterFilter) ([]models.Semester, int, error)
	Create(ctx context.Context, semester *models.Semester) (*models.Semester, error)
	Update(ctx context.Context, id int64, patch models.SemesterPatch) (*models.Semester, error)
	Delete(ctx context.Context, id int64) (*models.Semester, error)
}

const semesterTypeMessage = "semester type must be one of winter, spring, summer, fall"

// CreateSemesterRequest describes payload for creating semesters.
type CreateSemesterRequest struct {
	Year int                 `json:"year" validate:"required,min=1900,max=2999"`
	Type models.SemesterType `json:"type" validate:"required"`
}

// UpdateSemesterRequest updates semester fields.
type UpdateSemesterRequest struct {
	Year *int                 `json:"year" validate:"omitempty,min=1900,max=2999"`
	Type *models.SemesterType `json:"type"`
}

// SemesterService orchestrates semester workflows.
type SemesterService struct {
	repo      semesterRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSemesterService creates a new semester service instance.
func NewSemesterService(repo semesterRepository, validate *validator.Validate, logger *zap.Logger) *SemesterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SemesterService{repo: repo, validator: validate, logger: logger}
}

// List returns semesters with pagination metadata.
func (s *SemesterService) List(ctx context.Context, filter models.SemesterFilter) ([]models.Semester, *models.Pagination, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, semesterTypeMessage)
	}
	semesters, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list semesters")
	}
	return semesters, pagination(filter.Limit, filter.Offset, total), nil
}

// Get returns a semester by ID.
func (s *SemesterService) Get(ctx context.Context, id int64) (*models.Semester, error) {
	semester, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "semester not found", "failed to load semester")
	}
	return semester, nil
}

// Create inserts a new semester. A year may hold each season once.
func (s *SemesterService) Create(ctx context.Context, req CreateSemesterRequest) (*models.Semester, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid semester payload")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, semesterTypeMessage)
	}
	if err := s.ensureUnique(ctx, req.Year, req.Type, 0); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &models.Semester{Year: req.Year, Type: req.Type})
	if err != nil {
		return nil, storeError(err, "failed to create semester")
	}

	s.logger.Info("semester created", zap.Int64("semester_id", created.ID), zap.Int("year", created.Year), zap.String("type", string(created.Type)))
	return created, nil
}

// Update changes semester attributes.
func (s *SemesterService) Update(ctx context.Context, id int64, req UpdateSemesterRequest) (*models.Semester, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid semester payload")
	}
	if req.Type != nil && !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, semesterTypeMessage)
	}
	patch := models.SemesterPatch{Year: req.Year, Type: req.Type}
	if patch.Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no changes supplied")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "semester not found", "failed to load semester")
	}

	year, semesterType := existing.Year, existing.Type
	if patch.Year != nil {
		year = *patch.Year
	}
	if patch.Type != nil {
		semesterType = *patch.Type
	}
	if year != existing.Year || semesterType != existing.Type {
		if err := s.ensureUnique(ctx, year, semesterType, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, "failed to update semester")
	}

	s.logger.Info("semester updated", zap.Int64("semester_id", id))
	return updated, nil
}

// Delete removes a semester.
func (s *SemesterService) Delete(ctx context.Context, id int64) (*models.Semester, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, lookupError(err, "semester not found", "failed to load semester")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to delete semester")
	}
	s.logger.Info("semester deleted", zap.Int64("semester_id", id))
	return deleted, nil
}

func (s *SemesterService) ensureUnique(ctx context.Context, year int, semesterType models.SemesterType, excludeID int64) error {
	existing, err := s.repo.FindByYearAndType(ctx, year, semesterType)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return storeError(err, "failed to check semester uniqueness")
	case existing.ID == excludeID:
		return nil
	default:
		return appErrors.Clone(appErrors.ErrConflict, "semester already exists")
	}
}
