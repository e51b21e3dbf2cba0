// Package sqlfrag builds parameterized SQL clauses for PostgreSQL.
//
// Column names are interpolated into the clause text, so every table is
// declared once with an allowlist of identifiers and any column outside that
// list is rejected before a clause is produced. Values always travel as
// positional arguments.
package sqlfrag

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnknownColumn is returned when a clause references a column the table does not declare.
var ErrUnknownColumn = errors.New("sqlfrag: unknown column")

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Column is a trusted SQL identifier.
type Column string

// Pair binds a column to a value.
type Pair struct {
	Column Column
	Value  interface{}
}

// Criteria is an ordered list of column/value pairs. Order determines placeholder numbering.
type Criteria []Pair

// Add appends a pair and returns the extended criteria.
func (c Criteria) Add(column Column, value interface{}) Criteria {
	return append(c, Pair{Column: column, Value: value})
}

// Has reports whether the criteria reference the column.
func (c Criteria) Has(column Column) bool {
	for _, p := range c {
		if p.Column == column {
			return true
		}
	}
	return false
}

// Missing returns the required columns that are absent or blank. Nil, blank
// strings and zero integers count as blank; booleans are always present.
func (c Criteria) Missing(required ...Column) []Column {
	var missing []Column
	for _, col := range required {
		present := false
		for _, p := range c {
			if p.Column == col && !blank(p.Value) {
				present = true
				break
			}
		}
		if !present {
			missing = append(missing, col)
		}
	}
	return missing
}

func blank(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case int:
		return val == 0
	case int64:
		return val == 0
	default:
		return false
	}
}

// Table describes a relation and the identifiers that may appear in its clauses.
type Table struct {
	name    string
	search  Column
	columns []Column
	allowed map[Column]struct{}
}

// NewTable declares a table. search names the column used for free-text
// filtering and may be empty. NewTable panics on malformed identifiers since
// tables are declared at package initialisation.
func NewTable(name string, search Column, columns ...Column) Table {
	if !identifierPattern.MatchString(name) {
		panic(fmt.Sprintf("sqlfrag: invalid table name %q", name))
	}
	allowed := make(map[Column]struct{}, len(columns))
	for _, col := range columns {
		if !identifierPattern.MatchString(string(col)) {
			panic(fmt.Sprintf("sqlfrag: invalid column %q on table %s", col, name))
		}
		allowed[col] = struct{}{}
	}
	if search != "" {
		if _, ok := allowed[search]; !ok {
			panic(fmt.Sprintf("sqlfrag: search column %q not declared on table %s", search, name))
		}
	}
	return Table{name: name, search: search, columns: columns, allowed: allowed}
}

// Name returns the table name.
func (t Table) Name() string {
	return t.name
}

// Columns returns the declared columns in declaration order.
func (t Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// SelectList renders the declared columns for SELECT and RETURNING lists.
func (t Table) SelectList() string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = string(col)
	}
	return strings.Join(names, ", ")
}

func (t Table) check(criteria Criteria) error {
	for _, p := range criteria {
		if _, ok := t.allowed[p.Column]; !ok {
			return fmt.Errorf("%w %q on table %s", ErrUnknownColumn, p.Column, t.name)
		}
	}
	return nil
}

// Where renders a WHERE clause. A non-empty search token on a table with a
// search column becomes the first argument.
func (t Table) Where(criteria Criteria, search string) (string, []interface{}, error) {
	return t.WhereOffset(criteria, search, 0)
}

// WhereOffset is Where with placeholders numbered after offset existing arguments.
func (t Table) WhereOffset(criteria Criteria, search string, offset int) (string, []interface{}, error) {
	if err := t.check(criteria); err != nil {
		return "", nil, err
	}
	if t.search == "" {
		search = ""
	}
	if len(criteria) == 0 && search == "" {
		return "", []interface{}{}, nil
	}

	conditions := make([]string, 0, len(criteria)+1)
	args := make([]interface{}, 0, len(criteria)+1)
	if search != "" {
		args = append(args, search)
		conditions = append(conditions, fmt.Sprintf("%s LIKE '%%' || $%d || '%%'", t.search, offset+len(args)))
	}
	for _, p := range criteria {
		args = append(args, p.Value)
		conditions = append(conditions, fmt.Sprintf(`"%s"=$%d`, p.Column, offset+len(args)))
	}

	return "WHERE " + strings.Join(conditions, " AND "), args, nil
}

// Set renders an UPDATE assignment list without a WHERE clause.
func (t Table) Set(attrs Criteria) (string, []interface{}, error) {
	if err := t.check(attrs); err != nil {
		return "", nil, err
	}
	if len(attrs) == 0 {
		return "", []interface{}{}, nil
	}

	assignments := make([]string, len(attrs))
	args := make([]interface{}, len(attrs))
	for i, p := range attrs {
		assignments[i] = fmt.Sprintf("%s = $%d", p.Column, i+1)
		args[i] = p.Value
	}

	return "SET " + strings.Join(assignments, ", "), args, nil
}

// Values renders the column list and VALUES tuple of an INSERT.
func (t Table) Values(attrs Criteria) (string, []interface{}, error) {
	if err := t.check(attrs); err != nil {
		return "", nil, err
	}
	if len(attrs) == 0 {
		return "", []interface{}{}, nil
	}

	columns := make([]string, len(attrs))
	placeholders := make([]string, len(attrs))
	args := make([]interface{}, len(attrs))
	for i, p := range attrs {
		columns[i] = fmt.Sprintf(`"%s"`, p.Column)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = p.Value
	}

	return fmt.Sprintf("(%s) VALUES (%s)", strings.Join(columns, ","), strings.Join(placeholders, ",")), args, nil
}

// Join concatenates non-empty query parts with single spaces.
func Join(parts ...string) string {
	kept := parts[:0:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, " ")
}
