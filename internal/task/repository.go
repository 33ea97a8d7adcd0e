package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned when a task record is not found.
var ErrTaskNotFound = errors.New("task not found")

// ErrUserRefNotFound is returned when a task references a user that does
// not exist (assignee or creator).
var ErrUserRefNotFound = errors.New("referenced user not found")

// ErrTeamRefNotFound is returned when a task references a team that does
// not exist.
var ErrTeamRefNotFound = errors.New("referenced team not found")

// Repository provides CRUD operations on the tasks table.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	List(ctx context.Context, filter ListFilter) ([]Task, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
