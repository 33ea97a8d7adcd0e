package validation

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/task"
)

// TaskRequest mirrors the fields needed for create/update task validation.
type TaskRequest struct {
	Title      string
	Status     string
	AssignedTo string
	CreatedBy  string
	TeamID     string // empty means no team
	DueDate    string // RFC 3339 or empty
}

// ValidateTaskRequest validates the fields of a create or update task request.
func ValidateTaskRequest(req TaskRequest) []FieldError {
	var errs []FieldError

	errs = requireName("title", req.Title, errs)

	if req.Status != "" {
		if _, ok := task.ParseStatus(req.Status); !ok {
			errs = append(errs, FieldError{Field: "status", Message: `status must be "todo", "in_progress" or "done"`})
		}
	}

	if req.AssignedTo == "" {
		errs = append(errs, FieldError{Field: "assignedTo", Message: "assignedTo is required"})
	} else if _, err := uuid.Parse(req.AssignedTo); err != nil {
		errs = append(errs, FieldError{Field: "assignedTo", Message: "assignedTo must be a valid UUID"})
	}

	if req.CreatedBy != "" {
		if _, err := uuid.Parse(req.CreatedBy); err != nil {
			errs = append(errs, FieldError{Field: "createdBy", Message: "createdBy must be a valid UUID"})
		}
	}

	if req.TeamID != "" {
		if _, err := uuid.Parse(req.TeamID); err != nil {
			errs = append(errs, FieldError{Field: "teamId", Message: "teamId must be a valid UUID"})
		}
	}

	if req.DueDate != "" {
		if _, err := time.Parse(time.RFC3339, req.DueDate); err != nil {
			errs = append(errs, FieldError{Field: "dueDate", Message: "dueDate must be an RFC 3339 timestamp"})
		}
	}

	return errs
}
