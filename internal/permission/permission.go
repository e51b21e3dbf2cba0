// Package permission ranks user roles.
package permission

import "github.com/noah-isme/course-advising-api/internal/models"

// Level is an ordinal privilege level. Higher levels include lower ones.
type Level int

const (
	LevelUser     Level = 0
	LevelDirector Level = 1
	LevelAdmin    Level = 2
)

var levels = map[models.UserRole]Level{
	models.RoleUser:     LevelUser,
	models.RoleDirector: LevelDirector,
	models.RoleAdmin:    LevelAdmin,
}

// Of returns the level for role. ok is false for unknown roles.
func Of(role models.UserRole) (level Level, ok bool) {
	level, ok = levels[role]
	return level, ok
}

// Allows reports whether role meets the required level. Unknown roles are denied.
func Allows(role models.UserRole, required Level) bool {
	level, ok := Of(role)
	if !ok {
		return false
	}
	return level >= required
}

// ValidRole reports whether role is one of the fixed roles.
func ValidRole(role models.UserRole) bool {
	_, ok := levels[role]
	return ok
}

// SelfOr allows the actor when it targets itself or meets the required level.
func SelfOr(actor *models.User, targetID int64, required Level) bool {
	if actor == nil {
		return false
	}
	if actor.ID == targetID {
		return true
	}
	return Allows(actor.Role, required)
}
