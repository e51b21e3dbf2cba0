package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-advising-api/internal/models"
	"github.com/noah-isme/course-advising-api/pkg/sqlfrag"
)

var semestersTable = sqlfrag.NewTable("semesters", "", "id", "year", "type")

// SemesterRepository handles persistence for semesters.
type SemesterRepository struct {
	store tableStore[models.Semester]
}

// NewSemesterRepository instantiates a semester repository.
func NewSemesterRepository(db *sqlx.DB, opts ...Option) *SemesterRepository {
	return &SemesterRepository{store: newTableStore[models.Semester](db, semestersTable, opts, "year", "type")}
}

// FindByID loads a semester by identifier.
func (r *SemesterRepository) FindByID(ctx context.Context, id int64) (*models.Semester, error) {
	return r.store.FindOne(ctx, sqlfrag.Criteria{{Column: "id", Value: id}})
}

// FindByYearAndType returns the semester for a year and season.
func (r *SemesterRepository) FindByYearAndType(ctx context.Context, year int, semesterType models.SemesterType) (*models.Semester, error) {
	return r.store.FindOne(ctx, sqlfrag.Criteria{
		{Column: "year", Value: year},
		{Column: "type", Value: string(semesterType)},
	})
}

// List returns semesters matching the filter with total count.
func (r *SemesterRepository) List(ctx context.Context, filter models.SemesterFilter) ([]models.Semester, int, error) {
	var criteria sqlfrag.Criteria
	if filter.Year != nil {
		criteria = criteria.Add("year", *filter.Year)
	}
	if filter.Type != nil {
		criteria = criteria.Add("type", string(*filter.Type))
	}

	semesters, err := r.store.FindAll(ctx, criteria, "", filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := r.store.Count(ctx, criteria, "")
	if err != nil {
		return nil, 0, err
	}
	return semesters, total, nil
}

// Create inserts a semester.
func (r *SemesterRepository) Create(ctx context.Context, semester *models.Semester) (*models.Semester, error) {
	return r.store.Create(ctx, sqlfrag.Criteria{
		{Column: "year", Value: semester.Year},
		{Column: "type", Value: string(semester.Type)},
	})
}

// Update applies the patch to a semester.
func (r *SemesterRepository) Update(ctx context.Context, id int64, patch models.SemesterPatch) (*models.Semester, error) {
	var attrs sqlfrag.Criteria
	if patch.Year != nil {
		attrs = attrs.Add("year", *patch.Year)
	}
	if patch.Type != nil {
		attrs = attrs.Add("type", string(*patch.Type))
	}
	return r.store.Update(ctx, id, attrs)
}

// Delete removes a semester.
func (r *SemesterRepository) Delete(ctx context.Context, id int64) (*models.Semester, error) {
	return r.store.Delete(ctx, id)
}
