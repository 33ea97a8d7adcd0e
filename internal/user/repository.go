package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user record is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when a user with the same email already exists.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrUserHasTasks is returned when attempting to delete a user that is
// still referenced by tasks (as assignee or creator).
var ErrUserHasTasks = errors.New("user is referenced by tasks")

// UpdateFields holds the mutable fields of a user. A PUT replaces all of
// them; PasswordHash is only rewritten when non-nil.
type UpdateFields struct {
	FullName     string
	Email        string
	Role         Role
	PasswordHash *string
}

// Repository provides CRUD operations on the users table.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAll(ctx context.Context) (int, error)
}
