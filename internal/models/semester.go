package models

// SemesterType is the season of a semester.
type SemesterType string

const (
	SemesterWinter SemesterType = "winter"
	SemesterSpring SemesterType = "spring"
	SemesterSummer SemesterType = "summer"
	SemesterFall   SemesterType = "fall"
)

// SemesterTypes lists the seasons in calendar order.
var SemesterTypes = []SemesterType{SemesterWinter, SemesterSpring, SemesterSummer, SemesterFall}

// Valid reports whether t is one of the known seasons.
func (t SemesterType) Valid() bool {
	for _, known := range SemesterTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Semester is a year/season pair in which courses are offered.
type Semester struct {
	ID   int64        `db:"id" json:"id"`
	Year int          `db:"year" json:"year"`
	Type SemesterType `db:"type" json:"type"`
}

// SemesterFilter captures list filters for semesters.
type SemesterFilter struct {
	Year   *int
	Type   *SemesterType
	Limit  int
	Offset int
}
