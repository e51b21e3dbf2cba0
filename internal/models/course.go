package models

// Course is a catalogue entry.
type Course struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Section string `db:"section" json:"section"`
	Credits int    `db:"credits" json:"credits"`
}

// CourseCategory links a course to its single category.
type CourseCategory struct {
	CourseID   int64 `db:"course_id" json:"courseId"`
	CategoryID int64 `db:"category_id" json:"categoryId"`
}

// CourseSemester records that a course is offered in a semester.
type CourseSemester struct {
	CourseID   int64 `db:"course_id" json:"courseId"`
	SemesterID int64 `db:"semester_id" json:"semesterId"`
}

// CourseDetail is a course with its category and offering semesters resolved.
type CourseDetail struct {
	Course
	CategoryPrefix string     `db:"category_prefix" json:"categoryPrefix"`
	CategoryName   string     `db:"category_name" json:"categoryName"`
	Semesters      []Semester `db:"-" json:"semesters"`
}

// CourseFilter captures list filters for courses.
type CourseFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}
