package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-advising-api/internal/models"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
)

type courseRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	FindDetailed(ctx context.Context, id int64) (*models.CourseDetail, error)
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error)
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	Update(ctx context.Context, id int64, patch models.CoursePatch) (*models.Course, error)
	Delete(ctx context.Context, id int64) (*models.Course, error)
	SetCategory(ctx context.Context, courseID, categoryID int64) (*models.CourseCategory, error)
	AddSemester(ctx context.Context, courseID, semesterID int64) (*models.CourseSemester, error)
	RemoveSemester(ctx context.Context, courseID, semesterID int64) (*models.CourseSemester, error)
	OfferedIn(ctx context.Context, courseID, semesterID int64) (bool, error)
}

type categoryLookup interface {
	FindByPrefix(ctx context.Context, prefix string) (*models.Category, error)
}

type semesterLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Semester, error)
}

// CreateCourseRequest describes payload for creating courses. Category is a
// category prefix; SemesterIDs lists the semesters the course is offered in.
type CreateCourseRequest struct {
	Name        string  `json:"name" validate:"required"`
	Section     string  `json:"section" validate:"required"`
	Credits     int     `json:"credits" validate:"min=0,max=30"`
	Category    string  `json:"category" validate:"required"`
	SemesterIDs []int64 `json:"semesterIds" validate:"dive,gt=0"`
}

// UpdateCourseRequest updates course fields and offerings.
type UpdateCourseRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1"`
	Section           *string `json:"section" validate:"omitempty,min=1"`
	Credits           *int    `json:"credits" validate:"omitempty,min=0,max=30"`
	Category          *string `json:"category" validate:"omitempty,min=1"`
	AddSemesterIDs    []int64 `json:"addSemesterIds" validate:"dive,gt=0"`
	RemoveSemesterIDs []int64 `json:"removeSemesterIds" validate:"dive,gt=0"`
}

func (r UpdateCourseRequest) empty() bool {
	return r.Name == nil && r.Section == nil && r.Credits == nil && r.Category == nil &&
		len(r.AddSemesterIDs) == 0 && len(r.RemoveSemesterIDs) == 0
}

// CourseService orchestrates course catalogue workflows.
type CourseService struct {
	repo       courseRepository
	categories categoryLookup
	semesters  semesterLookup
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewCourseService creates a new course service instance.
func NewCourseService(repo courseRepository, categories categoryLookup, semesters semesterLookup, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, categories: categories, semesters: semesters, validator: validate, logger: logger}
}

// List returns courses with category and semesters resolved.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, *models.Pagination, error) {
	if filter.Category != "" {
		filter.Category = NormalizePrefix(filter.Category)
	}
	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list courses")
	}
	return courses, pagination(filter.Limit, filter.Offset, total), nil
}

// Get returns a course with its category and semesters.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.CourseDetail, error) {
	course, err := s.repo.FindDetailed(ctx, id)
	if err != nil {
		return nil, lookupError(err, "course not found", "failed to load course")
	}
	return course, nil
}

// Create inserts a course, links its category and records its offerings.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.CourseDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	semesterIDs := uniqueIDs(req.SemesterIDs)
	if err := s.ensureSemesters(ctx, semesterIDs); err != nil {
		return nil, err
	}

	course, err := s.repo.Create(ctx, &models.Course{
		Name:    strings.TrimSpace(req.Name),
		Section: strings.TrimSpace(req.Section),
		Credits: req.Credits,
	})
	if err != nil {
		return nil, storeError(err, "failed to create course")
	}
	if _, err := s.repo.SetCategory(ctx, course.ID, category.ID); err != nil {
		return nil, storeError(err, "failed to link course category")
	}
	for _, semesterID := range semesterIDs {
		if _, err := s.repo.AddSemester(ctx, course.ID, semesterID); err != nil {
			return nil, storeError(err, "failed to link course semester")
		}
	}

	s.logger.Info("course created", zap.Int64("course_id", course.ID), zap.String("category", category.Prefix))
	return s.Get(ctx, course.ID)
}

// Update changes course attributes. A new category prefix is resolved before
// any attribute is written, so an unknown prefix leaves the course untouched.
func (s *CourseService) Update(ctx context.Context, id int64, req UpdateCourseRequest) (*models.CourseDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}
	if req.empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no changes supplied")
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, lookupError(err, "course not found", "failed to load course")
	}

	var category *models.Category
	if req.Category != nil {
		resolved, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		category = resolved
	}
	added := uniqueIDs(req.AddSemesterIDs)
	if err := s.ensureSemesters(ctx, added); err != nil {
		return nil, err
	}

	if category != nil {
		if _, err := s.repo.SetCategory(ctx, id, category.ID); err != nil {
			return nil, storeError(err, "failed to link course category")
		}
	}

	patch := models.CoursePatch{Credits: req.Credits}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	if req.Section != nil {
		section := strings.TrimSpace(*req.Section)
		patch.Section = &section
	}
	if !patch.Empty() {
		if _, err := s.repo.Update(ctx, id, patch); err != nil {
			return nil, storeError(err, "failed to update course")
		}
	}

	for _, semesterID := range added {
		if err := s.offer(ctx, id, semesterID, true); err != nil {
			return nil, err
		}
	}
	for _, semesterID := range uniqueIDs(req.RemoveSemesterIDs) {
		if err := s.offer(ctx, id, semesterID, false); err != nil {
			return nil, err
		}
	}

	s.logger.Info("course updated", zap.Int64("course_id", id))
	return s.Get(ctx, id)
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id int64) (*models.Course, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, lookupError(err, "course not found", "failed to load course")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to delete course")
	}
	s.logger.Info("course deleted", zap.Int64("course_id", id))
	return deleted, nil
}

func (s *CourseService) resolveCategory(ctx context.Context, prefix string) (*models.Category, error) {
	category, err := s.categories.FindByPrefix(ctx, NormalizePrefix(prefix))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown category prefix %q", NormalizePrefix(prefix)))
		}
		return nil, storeError(err, "failed to load category")
	}
	return category, nil
}

func (s *CourseService) ensureSemesters(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := s.semesters.FindByID(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("semester %d not found", id))
			}
			return storeError(err, "failed to load semester")
		}
	}
	return nil
}

// offer adds or removes an offering, skipping no-op changes.
func (s *CourseService) offer(ctx context.Context, courseID, semesterID int64, offered bool) error {
	current, err := s.repo.OfferedIn(ctx, courseID, semesterID)
	if err != nil {
		return storeError(err, "failed to load course semester")
	}
	if current == offered {
		return nil
	}
	if offered {
		_, err = s.repo.AddSemester(ctx, courseID, semesterID)
	} else {
		_, err = s.repo.RemoveSemester(ctx, courseID, semesterID)
	}
	if err != nil {
		return storeError(err, "failed to update course semester")
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
