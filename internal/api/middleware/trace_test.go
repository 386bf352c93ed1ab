package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskops-api/internal/api/shared"
	"github.com/phrazzld/taskops-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceMiddleware(t *testing.T) {
	base, buf := logger.GetTestLogger(t)

	var seenTraceID string
	handler := NewTraceMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	header := w.Header().Get(RequestIDHeader)
	require.NotEmpty(t, header)
	_, err := uuid.Parse(header)
	assert.NoError(t, err, "request ID should be a UUID")
	assert.Equal(t, header, seenTraceID, "context and header should carry the same ID")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, header, e["trace_id"], "every log line should carry the trace ID")
	}
	logger.AssertLogField(t, buf, "msg", "inside handler")
	logger.AssertLogField(t, buf, "status", float64(http.StatusTeapot))
}

func TestTraceMiddlewareFreshIDPerRequest(t *testing.T) {
	handler := NewTraceMiddleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		// An incoming header must not be reused
		req.Header.Set(RequestIDHeader, "client-supplied")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		id := w.Header().Get(RequestIDHeader)
		assert.NotEqual(t, "client-supplied", id)
		assert.False(t, seen[id], "request IDs must be unique")
		seen[id] = true
	}
}
