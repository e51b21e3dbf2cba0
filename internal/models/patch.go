package models

// UserPatch holds optional user changes.
type UserPatch struct {
	Email   *string
	Role    *UserRole
	Enabled *bool
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Email == nil && p.Role == nil && p.Enabled == nil
}

// CategoryPatch holds optional category changes.
type CategoryPatch struct {
	Name   *string
	Prefix *string
}

// Empty reports whether the patch changes nothing.
func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Prefix == nil
}

// SemesterPatch holds optional semester changes.
type SemesterPatch struct {
	Year *int
	Type *SemesterType
}

// Empty reports whether the patch changes nothing.
func (p SemesterPatch) Empty() bool {
	return p.Year == nil && p.Type == nil
}

// CoursePatch holds optional course attribute changes.
type CoursePatch struct {
	Name    *string
	Section *string
	Credits *int
}

// Empty reports whether the patch changes nothing.
func (p CoursePatch) Empty() bool {
	return p.Name == nil && p.Section == nil && p.Credits == nil
}
