package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/internal/permission"
	"github.com/noah-isme/course-advising-api/internal/session"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

// UpdateUserRequest payload for updating users. Email may be changed by the
// user themself; role and enabled require an admin.
type UpdateUserRequest struct {
	Email   *string          `json:"email" validate:"omitempty,email"`
	Role    *models.UserRole `json:"role" validate:"omitempty,oneof=user director admin"`
	Enabled *bool            `json:"enabled"`
}

// UserService handles user registration and management workflows.
type UserService struct {
	repo             userRepository
	validator        *validator.Validate
	logger           *zap.Logger
	masterAdminEmail string
}

// NewUserService creates an instance of UserService. Sessions whose email
// matches masterAdminEmail are registered as enabled admins.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger, masterAdminEmail string) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{
		repo:             repo,
		validator:        validate,
		logger:           logger,
		masterAdminEmail: strings.ToLower(strings.TrimSpace(masterAdminEmail)),
	}
}

// Register returns the user bound to the session, creating it on first sight.
// The boolean reports whether a new user was created.
func (s *UserService) Register(ctx context.Context, principal *session.Principal) (*models.User, bool, error) {
	if principal == nil || principal.ExternalID == "" {
		return nil, false, appErrors.ErrUnauthorized
	}

	existing, err := s.repo.FindByExternalID(ctx, principal.ExternalID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, storeError(err, "failed to load user")
	}

	email := strings.ToLower(strings.TrimSpace(principal.Email))
	if email == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "session has no email address")
	}

	user := &models.User{
		ExternalID: principal.ExternalID,
		Email:      email,
		Role:       models.RoleUser,
	}
	if s.masterAdminEmail != "" && email == s.masterAdminEmail {
		user.Role = models.RoleAdmin
		user.Enabled = true
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, false, storeError(err, "failed to create user")
	}

	s.logger.Info("registered user", zap.Int64("user_id", created.ID), zap.String("role", string(created.Role)))
	return created, true, nil
}

// Resolve returns the registered user for a session identity.
func (s *UserService) Resolve(ctx context.Context, externalID string) (*models.User, error) {
	user, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "user is not registered")
		}
		return nil, storeError(err, "failed to load user")
	}
	return user, nil
}

// List returns users and pagination metadata.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, *models.Pagination, error) {
	if filter.Role != nil && !permission.ValidRole(*filter.Role) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "role must be one of user, director, admin")
	}
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list users")
	}
	return users, pagination(filter.Limit, filter.Offset, total), nil
}

// Get returns a user by ID. Users may read themselves; directors may read anyone.
func (s *UserService) Get(ctx context.Context, actor *models.User, id int64) (*models.User, error) {
	if !permission.SelfOr(actor, id, permission.LevelDirector) {
		return nil, appErrors.ErrForbidden
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "user not found", "failed to load user")
	}
	return user, nil
}

// Update modifies the user attributes.
func (s *UserService) Update(ctx context.Context, actor *models.User, id int64, req UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid update payload")
	}

	patch := models.UserPatch{Role: req.Role, Enabled: req.Enabled}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		patch.Email = &email
	}
	if patch.Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no changes supplied")
	}

	if !permission.SelfOr(actor, id, permission.LevelAdmin) {
		return nil, appErrors.ErrForbidden
	}
	if (patch.Role != nil || patch.Enabled != nil) && !permission.Allows(actor.Role, permission.LevelAdmin) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admins can change role or enabled")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, lookupError(err, "user not found", "failed to load user")
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err, "failed to update user")
	}

	s.logger.Info("updated user", zap.Int64("user_id", id), zap.Int64("actor_id", actor.ID))
	return user, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, actor *models.User, id int64) (*models.User, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if actor.ID == id {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot delete your own account")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, lookupError(err, "user not found", "failed to load user")
	}

	user, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to delete user")
	}

	s.logger.Info("deleted user", zap.Int64("user_id", id), zap.Int64("actor_id", actor.ID))
	return user, nil
}
