package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskops-api/internal/api"
	"github.com/phrazzld/taskops-api/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_TaskLifecycle(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	rr := serve(t, router, http.MethodPost, "/api/tasks", `{"title":"Buy milk","priority":2}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created api.TaskResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Equal(t, "Pending", created.Status)
	assert.Nil(t, created.Description)
	assert.Equal(t, "/api/tasks/"+created.ID, rr.Header().Get("Location"))

	taskPath := "/api/tasks/" + created.ID

	rr = serve(t, router, http.MethodPut, taskPath, `{"description":"2%","priority":4,"status":"InProgress"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var updated api.TaskResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
	assert.Equal(t, "InProgress", updated.Status)
	assert.Equal(t, 4, updated.Priority)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "2%", *updated.Description)
	assert.Equal(t, created.Title, updated.Title)

	rr = serve(t, router, http.MethodDelete, taskPath, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(t, router, http.MethodGet, taskPath, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_RequestIDOnEveryResponse(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"health", http.MethodGet, "/api/health", http.StatusOK},
		{"list", http.MethodGet, "/api/tasks", http.StatusOK},
		{"unknown_task", http.MethodGet, "/api/tasks/" + uuid.NewString(), http.StatusNotFound},
		{"unknown_route", http.MethodGet, "/api/nope", http.StatusNotFound},
		{"openapi", http.MethodGet, api.OpenAPIPath, http.StatusOK},
	}

	seen := make(map[string]bool)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(t, router, tc.method, tc.path, "")

			assert.Equal(t, tc.status, rr.Code)

			requestID := rr.Header().Get(middleware.RequestIDHeader)
			_, err := uuid.Parse(requestID)
			require.NoError(t, err)
			assert.False(t, seen[requestID], "request id reused")
			seen[requestID] = true
		})
	}
}

func TestRouter_ClientRequestIDIsNotReused(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-supplied")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.NotEqual(t, "client-supplied", rr.Header().Get(middleware.RequestIDHeader))
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_ValidationErrorCarriesTraceID(t *testing.T) {
	app, _ := newTestApplication(t)
	router := app.setupRouter()

	rr := serve(t, router, http.MethodPost, "/api/tasks", `{"title":"ab","priority":6}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var body struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
		TraceID string   `json:"trace_id"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "Validation failed", body.Error)
	assert.Len(t, body.Details, 2)
	assert.Equal(t, rr.Header().Get(middleware.RequestIDHeader), body.TraceID)
}
