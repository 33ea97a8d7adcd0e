package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/api/middleware"
	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/task"
	"github.com/taskforge/taskforge/internal/team"
	"github.com/taskforge/taskforge/internal/user"
)

// --- Request helpers ---

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

// makeAuthRequest builds a request carrying the given identity in its context.
func makeAuthRequest(method, path string, body []byte, params map[string]string, identity *auth.Identity) (*http.Request, *httptest.ResponseRecorder) {
	req, w := makeChiRequest(method, path, body, params)
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	return req, w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err, "failed to parse response body")
	return env
}

func identityWithRole(role user.Role) *auth.Identity {
	return &auth.Identity{
		UserID: uuid.New(),
		Email:  string(role) + "@demo.com",
		Role:   role,
	}
}

// --- Mock Team Repository ---

type mockTeamRepo struct {
	createFn  func(ctx context.Context, tm *team.Team) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*team.Team, error)
	listFn    func(ctx context.Context) ([]team.Team, error)
	updateFn  func(ctx context.Context, id uuid.UUID, fields team.UpdateFields) (*team.Team, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTeamRepo) Create(ctx context.Context, tm *team.Team) error {
	if m.createFn != nil {
		return m.createFn(ctx, tm)
	}
	tm.ID = uuid.New()
	tm.CreatedAt = time.Now().UTC()
	tm.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) List(ctx context.Context) ([]team.Team, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []team.Team{}, nil
}

func (m *mockTeamRepo) Update(ctx context.Context, id uuid.UUID, fields team.UpdateFields) (*team.Team, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, team.ErrTeamNotFound
}

func (m *mockTeamRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return team.ErrTeamNotFound
}

// --- Mock User Repository ---

type mockUserRepo struct {
	createFn     func(ctx context.Context, u *user.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*user.User, error)
	getByEmailFn func(ctx context.Context, email string) (*user.User, error)
	listFn       func(ctx context.Context) ([]user.User, error)
	updateFn     func(ctx context.Context, id uuid.UUID, fields user.UpdateFields) (*user.User, error)
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) List(ctx context.Context) ([]user.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []user.User{}, nil
}

func (m *mockUserRepo) Update(ctx context.Context, id uuid.UUID, fields user.UpdateFields) (*user.User, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return user.ErrUserNotFound
}

func (m *mockUserRepo) CountAll(ctx context.Context) (int, error) { return 0, nil }

// --- Mock Task Repository ---

type mockTaskRepo struct {
	createFn       func(ctx context.Context, tk *task.Task) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*task.Task, error)
	listFn         func(ctx context.Context, filter task.ListFilter) ([]task.Task, error)
	updateFn       func(ctx context.Context, id uuid.UUID, fields task.UpdateFields) (*task.Task, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, status task.Status) (*task.Task, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTaskRepo) Create(ctx context.Context, tk *task.Task) error {
	if m.createFn != nil {
		return m.createFn(ctx, tk)
	}
	tk.ID = uuid.New()
	if tk.Status == "" {
		tk.Status = task.StatusTodo
	}
	tk.CreatedAt = time.Now().UTC()
	tk.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, task.ErrTaskNotFound
}

func (m *mockTaskRepo) List(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []task.Task{}, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, id uuid.UUID, fields task.UpdateFields) (*task.Task, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields)
	}
	return nil, task.ErrTaskNotFound
}

func (m *mockTaskRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status task.Status) (*task.Task, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil, task.ErrTaskNotFound
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return task.ErrTaskNotFound
}

func sampleTask(id, assignedTo uuid.UUID) *task.Task {
	now := time.Now().UTC()
	return &task.Task{
		ID:          id,
		Title:       "Write report",
		Description: "Quarterly report",
		Status:      task.StatusTodo,
		AssignedTo:  assignedTo,
		CreatedBy:   uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
