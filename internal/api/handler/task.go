package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/api/middleware"
	"github.com/taskforge/taskforge/internal/api/response"
	"github.com/taskforge/taskforge/internal/api/validation"
	"github.com/taskforge/taskforge/internal/authz"
	"github.com/taskforge/taskforge/internal/task"
)

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssignedTo  string `json:"assignedTo"`
	CreatedBy   string `json:"createdBy,omitempty"`
	TeamID      string `json:"teamId,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

type taskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	AssignedTo  string  `json:"assignedTo"`
	CreatedBy   string  `json:"createdBy"`
	TeamID      *string `json:"teamId,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toTaskResponse(t *task.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		AssignedTo:  t.AssignedTo.String(),
		CreatedBy:   t.CreatedBy.String(),
		CreatedAt:   t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   t.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if t.TeamID != nil {
		tid := t.TeamID.String()
		resp.TeamID = &tid
	}
	if t.DueDate != nil {
		due := t.DueDate.UTC().Format(time.RFC3339)
		resp.DueDate = &due
	}
	return resp
}

// TaskHandler handles task CRUD endpoints.
type TaskHandler struct {
	repo task.Repository
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(repo task.Repository) *TaskHandler {
	return &TaskHandler{repo: repo}
}

// decodeTaskRequest decodes and validates the shared create/update body.
func decodeTaskRequest(w http.ResponseWriter, r *http.Request, requestID string) (*taskRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return nil, false
	}

	fieldErrors := validation.ValidateTaskRequest(validation.TaskRequest{
		Title:      req.Title,
		Status:     req.Status,
		AssignedTo: req.AssignedTo,
		CreatedBy:  req.CreatedBy,
		TeamID:     req.TeamID,
		DueDate:    req.DueDate,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return nil, false
	}

	req.Title = strings.TrimSpace(req.Title)
	return &req, true
}

// taskFields converts a validated request into repository fields.
// currentUser is used as the creator when the request names none.
func taskFields(req *taskRequest, currentUser uuid.UUID) task.UpdateFields {
	fields := task.UpdateFields{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusTodo,
		CreatedBy:   currentUser,
	}

	if req.Status != "" {
		fields.Status, _ = task.ParseStatus(req.Status)
	}
	fields.AssignedTo, _ = uuid.Parse(req.AssignedTo)
	if req.CreatedBy != "" {
		fields.CreatedBy, _ = uuid.Parse(req.CreatedBy)
	}
	if req.TeamID != "" {
		teamID, _ := uuid.Parse(req.TeamID)
		fields.TeamID = &teamID
	}
	if req.DueDate != "" {
		due, _ := time.Parse(time.RFC3339, req.DueDate)
		fields.DueDate = &due
	}

	return fields
}

// writeRefError maps broken task references to 400 responses.
func writeRefError(w http.ResponseWriter, err error, requestID string) bool {
	if errors.Is(err, task.ErrUserRefNotFound) {
		response.Err(w, http.StatusBadRequest, "INVALID_REFERENCE", "Assigned or creating user does not exist", requestID)
		return true
	}
	if errors.Is(err, task.ErrTeamRefNotFound) {
		response.Err(w, http.StatusBadRequest, "INVALID_REFERENCE", "Referenced team does not exist", requestID)
		return true
	}
	return false
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	req, ok := decodeTaskRequest(w, r, requestID)
	if !ok {
		return
	}

	fields := taskFields(req, identity.UserID)

	t := &task.Task{
		Title:       fields.Title,
		Description: fields.Description,
		Status:      fields.Status,
		AssignedTo:  fields.AssignedTo,
		CreatedBy:   fields.CreatedBy,
		TeamID:      fields.TeamID,
		DueDate:     fields.DueDate,
	}

	if err := h.repo.Create(r.Context(), t); err != nil {
		if writeRefError(w, err, requestID) {
			return
		}
		slog.Error("failed to create task", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create task", requestID)
		return
	}

	response.Created(w, "/tasks", t.ID.String(), toTaskResponse(t), requestID)
}

// List handles GET /tasks. Query parameters status, assignedTo, teamId
// and dueDate are independent, combinable equality filters.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	filter, fieldErrors := parseTaskFilter(r)
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid filter parameters", fieldErrors, requestID)
		return
	}

	tasks, err := h.repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list tasks", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tasks", requestID)
		return
	}

	items := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, toTaskResponse(&tasks[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// parseTaskFilter builds a ListFilter from query parameters.
func parseTaskFilter(r *http.Request) (task.ListFilter, []validation.FieldError) {
	var filter task.ListFilter
	var errs []validation.FieldError

	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status, ok := task.ParseStatus(raw)
		if !ok {
			errs = append(errs, validation.FieldError{Field: "status", Message: `status must be "todo", "in_progress" or "done"`})
		} else {
			filter.Status = &status
		}
	}

	if raw := q.Get("assignedTo"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errs = append(errs, validation.FieldError{Field: "assignedTo", Message: "assignedTo must be a valid UUID"})
		} else {
			filter.AssignedTo = &id
		}
	}

	if raw := q.Get("teamId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errs = append(errs, validation.FieldError{Field: "teamId", Message: "teamId must be a valid UUID"})
		} else {
			filter.TeamID = &id
		}
	}

	if raw := q.Get("dueDate"); raw != "" {
		due, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			due, err = time.Parse("2006-01-02", raw)
		}
		if err != nil {
			errs = append(errs, validation.FieldError{Field: "dueDate", Message: "dueDate must be an RFC 3339 timestamp or YYYY-MM-DD date"})
		} else {
			filter.DueDate = &due
		}
	}

	return filter, errs
}

// GetByID handles GET /tasks/{id}.
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseIDParam(w, r, requestID)
	if !ok {
		return
	}

	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Task not found", requestID)
			return
		}
		slog.Error("failed to get task", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get task", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTaskResponse(t), requestID)
}

// Update handles PUT /tasks/{id}. Admins and managers replace every
// mutable field. An employee assigned to the task may change only its
// status; any other fields in the employee's request are ignored.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity := middleware.GetIdentity(r.Context())

	id, ok := parseIDParam(w, r, requestID)
	if !ok {
		return
	}

	req, ok := decodeTaskRequest(w, r, requestID)
	if !ok {
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Task not found", requestID)
			return
		}
		slog.Error("failed to get task", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update task", requestID)
		return
	}

	scope := authz.UpdateTaskScope(identity.Role, existing.AssignedTo == identity.UserID)

	switch scope {
	case authz.ScopeFull:
		fields := taskFields(req, existing.CreatedBy)
		if _, err := h.repo.Update(r.Context(), id, fields); err != nil {
			if writeRefError(w, err, requestID) {
				return
			}
			if errors.Is(err, task.ErrTaskNotFound) {
				response.Err(w, http.StatusNotFound, "NOT_FOUND", "Task not found", requestID)
				return
			}
			slog.Error("failed to update task", "error", err, "id", id)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update task", requestID)
			return
		}

	case authz.ScopeStatusOnly:
		status := existing.Status
		if req.Status != "" {
			status, _ = task.ParseStatus(req.Status)
		}
		if _, err := h.repo.UpdateStatus(r.Context(), id, status); err != nil {
			if errors.Is(err, task.ErrTaskNotFound) {
				response.Err(w, http.StatusNotFound, "NOT_FOUND", "Task not found", requestID)
				return
			}
			slog.Error("failed to update task status", "error", err, "id", id)
			response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update task", requestID)
			return
		}

	default:
		response.Err(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions", requestID)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := parseIDParam(w, r, requestID)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Task not found", requestID)
			return
		}
		slog.Error("failed to delete task", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete task", requestID)
		return
	}

	response.NoContent(w)
}
