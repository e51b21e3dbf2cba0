package models

// UserCourse is a planned (taken=false) or completed (taken=true) enrollment.
type UserCourse struct {
	UserID     int64 `db:"user_id" json:"userId"`
	CourseID   int64 `db:"course_id" json:"courseId"`
	SemesterID int64 `db:"semester_id" json:"semesterId"`
	Taken      bool  `db:"taken" json:"taken"`
}

// UserCourseFilter narrows a user's enrollments.
type UserCourseFilter struct {
	UserID     int64
	SemesterID *int64
	Taken      *bool
	Limit      int
	Offset     int
}

// ScheduleRow is one enrollment joined with its course, category and semester.
type ScheduleRow struct {
	SemesterID     int64        `db:"semester_id" json:"semesterId"`
	Year           int          `db:"year" json:"year"`
	Type           SemesterType `db:"type" json:"type"`
	CourseID       int64        `db:"course_id" json:"courseId"`
	Name           string       `db:"name" json:"name"`
	Section        string       `db:"section" json:"section"`
	Credits        int          `db:"credits" json:"credits"`
	CategoryPrefix string       `db:"category_prefix" json:"categoryPrefix"`
	Taken          bool         `db:"taken" json:"taken"`
}

// ScheduleSemester groups a user's courses within one semester.
type ScheduleSemester struct {
	Semester Semester      `json:"semester"`
	Courses  []ScheduleRow `json:"courses"`
	Credits  int           `json:"credits"`
}

// Schedule is a user's plan ordered by semester.
type Schedule struct {
	UserID       int64              `json:"userId"`
	Semesters    []ScheduleSemester `json:"semesters"`
	TotalCredits int                `json:"totalCredits"`
	TakenCredits int                `json:"takenCredits"`
}
