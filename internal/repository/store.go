package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-advising-api/internal/models"
	appErrors "github.com/noah-isme/course-advising-api/pkg/errors"
	"github.com/noah-isme/course-advising-api/pkg/sqlfrag"
)

// QueryObserver receives timings for executed statements.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// tableStore implements the find/create/update/delete contract shared by every entity table.
type tableStore[T any] struct {
	db       *sqlx.DB
	table    sqlfrag.Table
	required []sqlfrag.Column
	observer QueryObserver
}

// Option configures a repository.
type Option func(*storeOptions)

type storeOptions struct {
	observer QueryObserver
}

// WithQueryObserver reports statement timings to o.
func WithQueryObserver(o QueryObserver) Option {
	return func(opts *storeOptions) {
		opts.observer = o
	}
}

func newTableStore[T any](db *sqlx.DB, table sqlfrag.Table, opts []Option, required ...sqlfrag.Column) tableStore[T] {
	var cfg storeOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	return tableStore[T]{db: db, table: table, required: required, observer: cfg.observer}
}

func (s *tableStore[T]) observe(op string, start time.Time) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveDBQuery(op+"_"+s.table.Name(), time.Since(start))
}

// FindOne returns the first row matching criteria or sql.ErrNoRows.
func (s *tableStore[T]) FindOne(ctx context.Context, criteria sqlfrag.Criteria) (*T, error) {
	where, args, err := s.table.Where(criteria, "")
	if err != nil {
		return nil, err
	}
	query := sqlfrag.Join(fmt.Sprintf("SELECT %s FROM %s", s.table.SelectList(), s.table.Name()), where, "LIMIT 1")

	defer s.observe("find_one", time.Now())
	var row T
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find %s: %w", s.table.Name(), err)
	}
	return &row, nil
}

// FindAll returns a page of rows matching criteria and the optional search token.
func (s *tableStore[T]) FindAll(ctx context.Context, criteria sqlfrag.Criteria, search string, limit, offset int) ([]T, error) {
	where, args, err := s.table.Where(criteria, search)
	if err != nil {
		return nil, err
	}
	limit, offset = models.NormalizePage(limit, offset)
	query := sqlfrag.Join(
		fmt.Sprintf("SELECT %s FROM %s", s.table.SelectList(), s.table.Name()),
		where,
		fmt.Sprintf("ORDER BY %s LIMIT %d OFFSET %d", s.table.Columns()[0], limit, offset),
	)

	defer s.observe("find_all", time.Now())
	rows := []T{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.table.Name(), err)
	}
	return rows, nil
}

// Count returns the number of rows matching criteria and the optional search token.
func (s *tableStore[T]) Count(ctx context.Context, criteria sqlfrag.Criteria, search string) (int, error) {
	where, args, err := s.table.Where(criteria, search)
	if err != nil {
		return 0, err
	}
	query := sqlfrag.Join("SELECT COUNT(*) FROM "+s.table.Name(), where)

	defer s.observe("count", time.Now())
	var total int
	if err := s.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table.Name(), err)
	}
	return total, nil
}

// Create inserts attrs after checking required columns and returns the stored row.
func (s *tableStore[T]) Create(ctx context.Context, attrs sqlfrag.Criteria) (*T, error) {
	if missing := attrs.Missing(s.required...); len(missing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, requiredMessage(missing))
	}
	values, args, err := s.table.Values(attrs)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("INSERT INTO %s %s RETURNING %s", s.table.Name(), values, s.table.SelectList())
	return s.returning(ctx, "create", query, args)
}

// Update applies attrs to the row with the given id.
func (s *tableStore[T]) Update(ctx context.Context, id int64, attrs sqlfrag.Criteria) (*T, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	return s.UpdateWhere(ctx, sqlfrag.Criteria{{Column: "id", Value: id}}, attrs)
}

// UpdateWhere applies attrs to the row matching criteria.
func (s *tableStore[T]) UpdateWhere(ctx context.Context, criteria, attrs sqlfrag.Criteria) (*T, error) {
	if len(criteria) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "row key is required")
	}
	if len(attrs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one attribute is required")
	}
	set, args, err := s.table.Set(attrs)
	if err != nil {
		return nil, err
	}
	where, whereArgs, err := s.table.WhereOffset(criteria, "", len(args))
	if err != nil {
		return nil, err
	}
	query := sqlfrag.Join("UPDATE "+s.table.Name(), set, where, "RETURNING "+s.table.SelectList())
	return s.returning(ctx, "update", query, append(args, whereArgs...))
}

// Delete removes the row with the given id and returns it.
func (s *tableStore[T]) Delete(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	return s.DeleteWhere(ctx, sqlfrag.Criteria{{Column: "id", Value: id}})
}

// DeleteWhere removes the row matching criteria and returns it.
func (s *tableStore[T]) DeleteWhere(ctx context.Context, criteria sqlfrag.Criteria) (*T, error) {
	if len(criteria) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "row key is required")
	}
	where, args, err := s.table.Where(criteria, "")
	if err != nil {
		return nil, err
	}
	query := sqlfrag.Join("DELETE FROM "+s.table.Name(), where, "RETURNING "+s.table.SelectList())
	return s.returning(ctx, "delete", query, args)
}

// returning runs a write that must hand back exactly one row. A successful
// statement with no row breaks the store contract and is reported as such.
func (s *tableStore[T]) returning(ctx context.Context, op, query string, args []interface{}) (*T, error) {
	defer s.observe(op, time.Now())
	var row T
	if err := s.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrStoreInvariant.Code, appErrors.ErrStoreInvariant.Status,
				fmt.Sprintf("store returned no row for %s on %s", op, s.table.Name()))
		}
		return nil, fmt.Errorf("%s %s: %w", op, s.table.Name(), err)
	}
	return &row, nil
}

func requiredMessage(missing []sqlfrag.Column) string {
	names := make([]string, len(missing))
	for i, col := range missing {
		names[i] = string(col)
	}
	return strings.Join(names, ", ") + " required"
}
