package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/pkg/sqlfrag"
)

var usersTable = sqlfrag.NewTable("users", "email", "id", "external_id", "email", "enabled", "role")

// UserRepository provides database access for user management.
type UserRepository struct {
	store tableStore[models.User]
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB, opts ...Option) *UserRepository {
	return &UserRepository{store: newTableStore[models.User](db, usersTable, opts, "external_id", "email", "role")}
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.store.FindOne(ctx, sqlfrag.Criteria{{Column: "id", Value: id}})
}

// FindByExternalID returns the user bound to a session identity.
func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return r.store.FindOne(ctx, sqlfrag.Criteria{{Column: "external_id", Value: externalID}})
}

// List returns users based on filters with total count.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	var criteria sqlfrag.Criteria
	if filter.Role != nil {
		criteria = criteria.Add("role", string(*filter.Role))
	}
	if filter.Enabled != nil {
		criteria = criteria.Add("enabled", *filter.Enabled)
	}

	users, err := r.store.FindAll(ctx, criteria, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.store.Count(ctx, criteria, filter.Search)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create inserts a new user and returns the stored record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return r.store.Create(ctx, sqlfrag.Criteria{
		{Column: "external_id", Value: user.ExternalID},
		{Column: "email", Value: user.Email},
		{Column: "enabled", Value: user.Enabled},
		{Column: "role", Value: string(user.Role)},
	})
}

// Update applies the patch to a user.
func (r *UserRepository) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	var attrs sqlfrag.Criteria
	if patch.Email != nil {
		attrs = attrs.Add("email", *patch.Email)
	}
	if patch.Role != nil {
		attrs = attrs.Add("role", string(*patch.Role))
	}
	if patch.Enabled != nil {
		attrs = attrs.Add("enabled", *patch.Enabled)
	}
	return r.store.Update(ctx, id, attrs)
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id int64) (*models.User, error) {
	return r.store.Delete(ctx, id)
}
