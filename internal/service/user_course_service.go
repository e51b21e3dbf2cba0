package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/internal/permission"
	"github.com/noah-isme/course-advising-api/internal/repository"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

type userCourseRepository interface {
	Find(ctx context.Context, key repository.UserCourseKey) (*models.UserCourse, error)
	Exists(ctx context.Context, key repository.UserCourseKey) (bool, error)
	List(ctx context.Context, filter models.UserCourseFilter) ([]models.UserCourse, int, error)
	Create(ctx context.Context, uc *models.UserCourse) (*models.UserCourse, error)
	SetTaken(ctx context.Context, key repository.UserCourseKey, taken bool) (*models.UserCourse, error)
	Delete(ctx context.Context, key repository.UserCourseKey) (*models.UserCourse, error)
}

type userLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type courseLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

// UserCourseRequest identifies an enrollment. UserID defaults to the caller.
type UserCourseRequest struct {
	UserID     int64 `json:"userId" form:"userId" validate:"gte=0"`
	CourseID   int64 `json:"courseId" form:"courseId" validate:"required,gt=0"`
	SemesterID int64 `json:"semesterId" form:"semesterId" validate:"required,gt=0"`
	Taken      *bool `json:"taken" form:"taken"`
}

func (r UserCourseRequest) key(userID int64) repository.UserCourseKey {
	return repository.UserCourseKey{UserID: userID, CourseID: r.CourseID, SemesterID: r.SemesterID}
}

// UserCourseService manages the courses a user plans or has taken.
type UserCourseService struct {
	repo      userCourseRepository
	users     userLookup
	courses   courseLookup
	semesters semesterLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserCourseService creates a new user course service instance.
func NewUserCourseService(repo userCourseRepository, users userLookup, courses courseLookup, semesters semesterLookup, validate *validator.Validate, logger *zap.Logger) *UserCourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserCourseService{repo: repo, users: users, courses: courses, semesters: semesters, validator: validate, logger: logger}
}

// List returns the enrollments of filter.UserID, or of the actor when unset.
func (s *UserCourseService) List(ctx context.Context, actor *models.User, filter models.UserCourseFilter) ([]models.UserCourse, *models.Pagination, error) {
	userID, err := s.target(ctx, actor, filter.UserID)
	if err != nil {
		return nil, nil, err
	}
	filter.UserID = userID

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list user courses")
	}
	return items, pagination(filter.Limit, filter.Offset, total), nil
}

// Add plans a course for a semester. Each (user, course, semester) is unique.
func (s *UserCourseService) Add(ctx context.Context, actor *models.User, req UserCourseRequest) (*models.UserCourse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user course payload")
	}
	userID, err := s.target(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		return nil, lookupError(err, "course not found", "failed to load course")
	}
	if _, err := s.semesters.FindByID(ctx, req.SemesterID); err != nil {
		return nil, lookupError(err, "semester not found", "failed to load semester")
	}

	key := req.key(userID)
	exists, err := s.repo.Exists(ctx, key)
	if err != nil {
		return nil, storeError(err, "failed to check user course")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course already planned for this semester")
	}

	uc := &models.UserCourse{UserID: userID, CourseID: req.CourseID, SemesterID: req.SemesterID}
	if req.Taken != nil {
		uc.Taken = *req.Taken
	}
	created, err := s.repo.Create(ctx, uc)
	if err != nil {
		return nil, storeError(err, "failed to create user course")
	}

	s.logger.Info("user course added",
		zap.Int64("user_id", userID),
		zap.Int64("course_id", req.CourseID),
		zap.Int64("semester_id", req.SemesterID),
		zap.Int64("actor_id", actor.ID),
	)
	return created, nil
}

// SetTaken marks an enrollment as taken or planned.
func (s *UserCourseService) SetTaken(ctx context.Context, actor *models.User, req UserCourseRequest) (*models.UserCourse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user course payload")
	}
	if req.Taken == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "taken is required")
	}
	userID, err := s.target(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}

	key := req.key(userID)
	if _, err := s.repo.Find(ctx, key); err != nil {
		return nil, lookupError(err, "user course not found", "failed to load user course")
	}
	updated, err := s.repo.SetTaken(ctx, key, *req.Taken)
	if err != nil {
		return nil, storeError(err, "failed to update user course")
	}
	return updated, nil
}

// Remove deletes an enrollment.
func (s *UserCourseService) Remove(ctx context.Context, actor *models.User, req UserCourseRequest) (*models.UserCourse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user course payload")
	}
	userID, err := s.target(ctx, actor, req.UserID)
	if err != nil {
		return nil, err
	}

	key := req.key(userID)
	if _, err := s.repo.Find(ctx, key); err != nil {
		return nil, lookupError(err, "user course not found", "failed to load user course")
	}
	deleted, err := s.repo.Delete(ctx, key)
	if err != nil {
		return nil, storeError(err, "failed to delete user course")
	}

	s.logger.Info("user course removed", zap.Int64("user_id", userID), zap.Int64("course_id", req.CourseID), zap.Int64("actor_id", actor.ID))
	return deleted, nil
}

// target resolves which user an operation applies to. Acting on another user
// requires director level, and that user must exist.
func (s *UserCourseService) target(ctx context.Context, actor *models.User, userID int64) (int64, error) {
	return resolveTarget(ctx, s.users, actor, userID)
}

func resolveTarget(ctx context.Context, users userLookup, actor *models.User, userID int64) (int64, error) {
	if actor == nil {
		return 0, appErrors.ErrUnauthorized
	}
	if userID == 0 {
		userID = actor.ID
	}
	if !permission.SelfOr(actor, userID, permission.LevelDirector) {
		return 0, appErrors.ErrForbidden
	}
	if userID == actor.ID {
		return userID, nil
	}
	if _, err := users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return 0, storeError(err, "failed to load user")
	}
	return userID, nil
}
