package models

// UserRole represents the available roles for the permission system.
type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleDirector UserRole = "director"
	RoleAdmin    UserRole = "admin"
)

// User represents an application user stored in the users table.
type User struct {
	ID         int64    `db:"id" json:"id"`
	ExternalID string   `db:"external_id" json:"externalId"`
	Email      string   `db:"email" json:"email"`
	Enabled    bool     `db:"enabled" json:"enabled"`
	Role       UserRole `db:"role" json:"role"`
}

// UserFilter captures filtering criteria for listing users.
type UserFilter struct {
	Search  string
	Role    *UserRole
	Enabled *bool
	Limit   int
	Offset  int
}
