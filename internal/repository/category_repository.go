package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/pkg/sqlfrag"
)

var categoriesTable = sqlfrag.NewTable("categories", "name", "id", "name", "prefix")

// CategoryRepository handles persistence for course categories.
type CategoryRepository struct {
	store tableStore[models.Category]
}

// NewCategoryRepository instantiates a category repository.
func NewCategoryRepository(db *sqlx.DB, opts ...Option) *CategoryRepository {
	return &CategoryRepository{store: newTableStore[models.Category](db, categoriesTable, opts, "name", "prefix")}
}

// FindByID loads a category by identifier.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	return r.store.FindOne(ctx, sqlfrag.Criteria{{Column: "id", Value: id}})
}

// FindByPrefix resolves a category from its prefix.
func (r *CategoryRepository) FindByPrefix(ctx context.Context, prefix string) (*models.Category, error) {
	return r.store.FindOne(ctx, sqlfrag.Criteria{{Column: "prefix", Value: prefix}})
}

// List returns categories matching the filter with total count.
func (r *CategoryRepository) List(ctx context.Context, filter models.CategoryFilter) ([]models.Category, int, error) {
	categories, err := r.store.FindAll(ctx, nil, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.store.Count(ctx, nil, filter.Search)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// Create inserts a category.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	return r.store.Create(ctx, sqlfrag.Criteria{
		{Column: "name", Value: category.Name},
		{Column: "prefix", Value: category.Prefix},
	})
}

// Update applies the patch to a category.
func (r *CategoryRepository) Update(ctx context.Context, id int64, patch models.CategoryPatch) (*models.Category, error) {
	var attrs sqlfrag.Criteria
	if patch.Name != nil {
		attrs = attrs.Add("name", *patch.Name)
	}
	if patch.Prefix != nil {
		attrs = attrs.Add("prefix", *patch.Prefix)
	}
	return r.store.Update(ctx, id, attrs)
}

// Delete removes a category.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (*models.Category, error) {
	return r.store.Delete(ctx, id)
}
