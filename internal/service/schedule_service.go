package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/course-advising-api/internal/models"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
	"github.com/noah-isme/course-advising-api/pkg/export"
)

type scheduleRepository interface {
	Schedule(ctx context.Context, userID int64) ([]models.ScheduleRow, error)
}

var scheduleHeaders = []string{"Year", "Season", "Prefix", "Course", "Section", "Credits", "Taken"}

// ScheduleService builds a user's semester-by-semester plan.
type ScheduleService struct {
	repo   scheduleRepository
	users  userLookup
	logger *zap.Logger
}

// NewScheduleService creates a new schedule service instance.
func NewScheduleService(repo scheduleRepository, users userLookup, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, users: users, logger: logger}
}

// Build returns the schedule of userID grouped by semester in calendar order.
func (s *ScheduleService) Build(ctx context.Context, actor *models.User, userID int64) (*models.Schedule, error) {
	userID, err := resolveTarget(ctx, s.users, actor, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Schedule(ctx, userID)
	if err != nil {
		return nil, storeError(err, "failed to load schedule")
	}
	return GroupSchedule(userID, rows), nil
}

// Export renders the schedule in the requested format.
func (s *ScheduleService) Export(ctx context.Context, actor *models.User, userID int64, format export.Format) (*export.Document, error) {
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be one of json, csv, pdf")
	}
	schedule, err := s.Build(ctx, actor, userID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: scheduleHeaders}
	for _, semester := range schedule.Semesters {
		for _, row := range semester.Courses {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Year":    strconv.Itoa(row.Year),
				"Season":  string(row.Type),
				"Prefix":  row.CategoryPrefix,
				"Course":  row.Name,
				"Section": row.Section,
				"Credits": strconv.Itoa(row.Credits),
				"Taken":   strconv.FormatBool(row.Taken),
			})
		}
	}
	dataset.Footer = fmt.Sprintf("Total credits: %d (taken %d)", schedule.TotalCredits, schedule.TakenCredits)

	doc, err := export.Render(format, dataset, fmt.Sprintf("Schedule for user %d", schedule.UserID), fmt.Sprintf("schedule-%d", schedule.UserID))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule")
	}
	s.logger.Debug("schedule exported", zap.Int64("user_id", schedule.UserID), zap.String("format", string(format)), zap.Int("rows", len(dataset.Rows)))
	return doc, nil
}

// GroupSchedule folds ordered rows into per-semester groups and totals credits.
func GroupSchedule(userID int64, rows []models.ScheduleRow) *models.Schedule {
	schedule := &models.Schedule{UserID: userID, Semesters: []models.ScheduleSemester{}}
	for _, row := range rows {
		n := len(schedule.Semesters)
		if n == 0 || schedule.Semesters[n-1].Semester.ID != row.SemesterID {
			schedule.Semesters = append(schedule.Semesters, models.ScheduleSemester{
				Semester: models.Semester{ID: row.SemesterID, Year: row.Year, Type: row.Type},
			})
			n++
		}
		group := &schedule.Semesters[n-1]
		group.Courses = append(group.Courses, row)
		group.Credits += row.Credits
		schedule.TotalCredits += row.Credits
		if row.Taken {
			schedule.TakenCredits += row.Credits
		}
	}
	return schedule
}
