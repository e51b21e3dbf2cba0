package models

// Category groups courses under a short unique prefix (e.g. CS, MATH).
type Category struct {
	ID     int64  `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Prefix string `db:"prefix" json:"prefix"`
}

// CategoryFilter captures list filters for categories.
type CategoryFilter struct {
	Search string
	Limit  int
	Offset int
}
