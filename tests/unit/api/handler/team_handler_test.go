package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/taskforge/taskforge/internal/api/handler"
	"github.com/taskforge/taskforge/internal/team"
)

func sampleTeam(id uuid.UUID) *team.Team {
	now := time.Now().UTC()
	return &team.Team{
		ID:          id,
		Name:        "platform",
		Description: "Platform engineering",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ===== POST /teams =====

func TestTeamCreate_Success(t *testing.T) {
	t.Parallel()

	repo := &mockTeamRepo{}
	h := handler.NewTeamHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"name":        "platform",
		"description": "Platform engineering",
	})

	req, w := makeChiRequest(http.MethodPost, "/teams", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	env := parseEnvelope(t, w)
	assert.Nil(t, env["error"])
	data := env["data"].(map[string]interface{})
	assert.Equal(t, "platform", data["name"])
	assert.Equal(t, "Platform engineering", data["description"])
	assert.NotEmpty(t, data["id"])

	assert.Equal(t, "/teams/"+data["id"].(string), w.Header().Get("Location"))
}

func TestTeamCreate_ValidationError_MissingName(t *testing.T) {
	t.Parallel()

	repo := &mockTeamRepo{}
	h := handler.NewTeamHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{"description": "no name"})

	req, w := makeChiRequest(http.MethodPost, "/teams", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := parseEnvelope(t, w)
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])
}

// ===== GET /teams =====

func TestTeamList_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockTeamRepo{
		listFn: func(ctx context.Context) ([]team.Team, error) {
			return []team.Team{*sampleTeam(id)}, nil
		},
	}
	h := handler.NewTeamHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/teams", nil, nil)
	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	data := env["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, id.String(), data[0].(map[string]interface{})["id"])
}

func TestTeamList_Empty(t *testing.T) {
	t.Parallel()

	repo := &mockTeamRepo{}
	h := handler.NewTeamHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/teams", nil, nil)
	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	assert.Len(t, env["data"].([]interface{}), 0)
}

// ===== GET /teams/{id} =====

func TestTeamGetByID_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockTeamRepo{
		getByIDFn: func(ctx context.Context, got uuid.UUID) (*team.Team, error) {
			if got == id {
				return sampleTeam(id), nil
			}
			return nil, team.ErrTeamNotFound
		},
	}
	h := handler.NewTeamHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/teams/"+id.String(), nil, map[string]string{"id": id.String()})
	h.GetByID(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	env := parseEnvelope(t, w)
	assert.Equal(t, id.String(), env["data"].(map[string]interface{})["id"])
}

func TestTeamGetByID_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockTeamRepo{}
	h := handler.NewTeamHandler(repo)

	id := uuid.New()
	req, w := makeChiRequest(http.MethodGet, "/teams/"+id.String(), nil, map[string]string{"id": id.String()})
	h.GetByID(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTeamGetByID_InvalidID(t *testing.T) {
	t.Parallel()

	repo := &mockTeamRepo{}
	h := handler.NewTeamHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/teams/abc", nil, map[string]string{"id": "abc"})
	h.GetByID(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := parseEnvelope(t, w)
	assert.Equal(t, "INVALID_ID", env["error"].(map[string]interface{})["code"])
}

// ===== PUT /teams/{id} =====

func TestTeamUpdate_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	var gotFields team.UpdateFields
	repo := &mockTeamRepo{
		updateFn: func(ctx context.Context, got uuid.UUID, fields team.UpdateFields) (*team.Team, error) {
			gotFields = fields
			return sampleTeam(id), nil
		},
	}
	h := handler.NewTeamHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{"name": "renamed"})
	req, w := makeChiRequest(http.MethodPut, "/teams/"+id.String(), body, map[string]string{"id": id.String()})
	h.Update(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "renamed", gotFields.Name)
	// omitted fields overwrite with empty values (full replace)
	assert.Equal(t, "", gotFields.Description)
}

func TestTeamUpdate_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockTeamRepo{}
	h := handler.NewTeamHandler(repo)

	id := uuid.New()
	body, _ := json.Marshal(map[string]interface{}{"name": "renamed"})
	req, w := makeChiRequest(http.MethodPut, "/teams/"+id.String(), body, map[string]string{"id": id.String()})
	h.Update(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ===== DELETE /teams/{id} =====

func TestTeamDelete_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockTeamRepo{
		deleteFn: func(ctx context.Context, got uuid.UUID) error { return nil },
	}
	h := handler.NewTeamHandler(repo)

	req, w := makeChiRequest(http.MethodDelete, "/teams/"+id.String(), nil, map[string]string{"id": id.String()})
	h.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestTeamDelete_NotFound(t *testing.T) {
	t.Parallel()

	repo := &mockTeamRepo{}
	h := handler.NewTeamHandler(repo)

	id := uuid.New()
	req, w := makeChiRequest(http.MethodDelete, "/teams/"+id.String(), nil, map[string]string{"id": id.String()})
	h.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
