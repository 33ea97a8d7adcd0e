package task

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// ParseStatus returns the Status matching the given string, or false if
// the string is not a known status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return Status(s), true
	}
	return "", false
}

// Valid reports whether the status is one of the defined values.
func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// Task represents a row in the tasks table. AssignedTo and CreatedBy
// reference users; TeamID is nil for tasks without a team.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      Status
	AssignedTo  uuid.UUID
	CreatedBy   uuid.UUID
	TeamID      *uuid.UUID
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListFilter holds optional filters for listing tasks. All set filters
// are combined with AND. DueDate matches by calendar date, ignoring
// time of day.
type ListFilter struct {
	Status     *Status
	AssignedTo *uuid.UUID
	TeamID     *uuid.UUID
	DueDate    *time.Time
}

// UpdateFields holds the mutable fields of a task. A PUT replaces all of
// them.
type UpdateFields struct {
	Title       string
	Description string
	Status      Status
	AssignedTo  uuid.UUID
	CreatedBy   uuid.UUID
	TeamID      *uuid.UUID
	DueDate     *time.Time
}
