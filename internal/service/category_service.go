package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-advising-api/internal/models"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

type categoryRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindByPrefix(ctx context.Context, prefix string) (*models.Category, error)
	List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, int, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, id int64, patch models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id int64) (*models.Category, error)
}

// CreateCategoryRequest describes payload for creating categories.
type CreateCategoryRequest struct {
	Name   string `json:"name" validate:"required"`
	Prefix string `json:"prefix" validate:"required,max=16"`
}

// UpdateCategoryRequest updates category fields. Omitted fields are left unchanged.
type UpdateCategoryRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Prefix *string `json:"prefix" validate:"omitempty,min=1,max=16"`
}

// CategoryService orchestrates category workflows.
type CategoryService struct {
	repo      categoryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCategoryService creates a new category service instance.
func NewCategoryService(repo categoryRepository, validate *validator.Validate, logger *zap.Logger) *CategoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{repo: repo, validator: validate, logger: logger}
}

// NormalizePrefix trims and upper-cases a category prefix.
func NormalizePrefix(prefix string) string {
	return strings.ToUpper(strings.TrimSpace(prefix))
}

// List returns categories with pagination metadata.
func (s *CategoryService) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, *models.Pagination, error) {
	categories, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list categories")
	}
	return categories, pagination(filter.Limit, filter.Offset, total), nil
}

// Get returns a category by ID.
func (s *CategoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "category not found", "failed to load category")
	}
	return category, nil
}

// Create inserts a new category. Prefixes are unique.
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*models.Category, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid category payload")
	}

	category := &models.Category{
		Name:   strings.TrimSpace(req.Name),
		Prefix: NormalizePrefix(req.Prefix),
	}
	if err := s.ensurePrefixFree(ctx, category.Prefix, 0); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, storeError(err, "failed to create category")
	}

	s.logger.Info("category created", zap.Int64("category_id", created.ID), zap.String("prefix", created.Prefix))
	return created, nil
}

// Update changes category attributes.
func (s *CategoryService) Update(ctx context.Context, id int64, req UpdateCategoryRequest) (*models.Category, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid category payload")
	}

	var patch models.CategoryPatch
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	if req.Prefix != nil {
		prefix := NormalizePrefix(*req.Prefix)
		patch.Prefix = &prefix
	}
	if patch.Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no changes supplied")
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "category not found", "failed to load category")
	}
	if patch.Prefix != nil && *patch.Prefix != existing.Prefix {
		if err := s.ensurePrefixFree(ctx, *patch.Prefix, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, "failed to update category")
	}

	s.logger.Info("category updated", zap.Int64("category_id", id))
	return updated, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id int64) (*models.Category, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, lookupError(err, "category not found", "failed to load category")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to delete category")
	}
	s.logger.Info("category deleted", zap.Int64("category_id", id))
	return deleted, nil
}

func (s *CategoryService) ensurePrefixFree(ctx context.Context, prefix string, excludeID int64) error {
	existing, err := s.repo.FindByPrefix(ctx, prefix)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil
	case err != nil:
		return storeError(err, "failed to check category prefix")
	case existing.ID == excludeID:
		return nil
	default:
		return appErrors.Clone(appErrors.ErrConflict, "category prefix already exists")
	}
}
