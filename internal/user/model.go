package user

import (
	"time"

	"github.com/google/uuid"
)

// Role describes what a user is allowed to do across the API.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManage   Role = "manage"
	RoleEmployee Role = "employee"
)

// ParseRole returns the Role matching the given string, or false if the
// string is not a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleManage, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether the role is one of the defined values.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// String returns the canonical lowercase name of the role.
func (r Role) String() string {
	return string(r)
}

// User represents a row in the users table. PasswordHash is a bcrypt
// digest and is never serialized to API responses.
type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
