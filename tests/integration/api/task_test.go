package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskLifecycle(t *testing.T) {
	env := setupTestServer(t)

	// Manager creates a task for the employee.
	resp, body := env.request(t, http.MethodPost, "/tasks", env.managerToken, map[string]string{
		"title":       "Ship the release",
		"description": "Cut the tag and publish",
		"assignedTo":  env.employeeID,
		"dueDate":     "2026-09-15T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := dataOf(t, body)
	taskID := created["id"].(string)
	assert.Equal(t, "todo", created["status"])
	assert.Equal(t, env.managerID, created["createdBy"])
	assert.Equal(t, "/tasks/"+taskID, resp.Header.Get("Location"))

	// Employee moves it to done; the extra fields in the body are ignored.
	resp, _ = env.request(t, http.MethodPut, "/tasks/"+taskID, env.employeeToken, map[string]string{
		"title":      "Hijacked title",
		"status":     "done",
		"assignedTo": env.employeeID,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = env.request(t, http.MethodGet, "/tasks/"+taskID, env.employeeToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := dataOf(t, body)
	assert.Equal(t, "done", got["status"])
	assert.Equal(t, "Ship the release", got["title"])

	// Manager replaces the whole task.
	resp, _ = env.request(t, http.MethodPut, "/tasks/"+taskID, env.managerToken, map[string]string{
		"title":      "Ship the hotfix",
		"status":     "in_progress",
		"assignedTo": env.employeeID,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = env.request(t, http.MethodGet, "/tasks/"+taskID, env.managerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = dataOf(t, body)
	assert.Equal(t, "Ship the hotfix", got["title"])
	assert.Equal(t, "in_progress", got["status"])

	// Admin deletes; the task is gone.
	resp, _ = env.request(t, http.MethodDelete, "/tasks/"+taskID, env.adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = env.request(t, http.MethodGet, "/tasks/"+taskID, env.adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errCodeOf(t, body))
}

func TestTaskCreate_UnknownAssignee(t *testing.T) {
	env := setupTestServer(t)

	resp, body := env.request(t, http.MethodPost, "/tasks", env.managerToken, map[string]string{
		"title":      "Orphan",
		"assignedTo": uuid.New().String(),
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REFERENCE", errCodeOf(t, body))
}

func TestTaskCreate_UnknownTeam(t *testing.T) {
	env := setupTestServer(t)

	resp, body := env.request(t, http.MethodPost, "/tasks", env.managerToken, map[string]string{
		"title":      "Teamless",
		"assignedTo": env.employeeID,
		"teamId":     uuid.New().String(),
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REFERENCE", errCodeOf(t, body))
}

func TestTaskUpdate_EmployeeNotAssignee(t *testing.T) {
	env := setupTestServer(t)

	resp, body := env.request(t, http.MethodPost, "/tasks", env.managerToken, map[string]string{
		"title":      "Budget review",
		"assignedTo": env.managerID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := dataOf(t, body)["id"].(string)

	resp, body = env.request(t, http.MethodPut, "/tasks/"+taskID, env.employeeToken, map[string]string{
		"title":      "Budget review",
		"status":     "done",
		"assignedTo": env.managerID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errCodeOf(t, body))
}

func TestTaskFilters(t *testing.T) {
	env := setupTestServer(t)

	payloads := []map[string]string{
		{"title": "A", "assignedTo": env.employeeID, "status": "done", "dueDate": "2026-09-15T08:30:00Z"},
		{"title": "B", "assignedTo": env.employeeID, "status": "todo"},
		{"title": "C", "assignedTo": env.managerID, "status": "done"},
	}
	for _, payload := range payloads {
		resp, _ := env.request(t, http.MethodPost, "/tasks", env.managerToken, payload)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	listTitles := func(query string) []string {
		resp, body := env.request(t, http.MethodGet, "/tasks"+query, env.managerToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		items := body["data"].([]interface{})
		titles := make([]string, 0, len(items))
		for _, item := range items {
			titles = append(titles, item.(map[string]interface{})["title"].(string))
		}
		return titles
	}

	assert.ElementsMatch(t, []string{"A", "B", "C"}, listTitles(""))
	assert.ElementsMatch(t, []string{"A", "C"}, listTitles("?status=done"))
	assert.ElementsMatch(t, []string{"A", "B"}, listTitles("?assignedTo="+env.employeeID))
	assert.ElementsMatch(t, []string{"A"}, listTitles("?status=done&assignedTo="+env.employeeID))
	// Date-only filtering ignores the time of day.
	assert.ElementsMatch(t, []string{"A"}, listTitles("?dueDate=2026-09-15"))
	assert.Empty(t, listTitles("?dueDate=2026-09-16"))
}
