package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskops-api/internal/domain"
	"github.com/phrazzld/taskops-api/internal/service"
)

// getPathUUID extracts a UUID from the URL path parameters.
// A missing or malformed value is reported as a *domain.ValidationError.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName + " is a required field")
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName + " must be a valid UUID")
	}

	return id, nil
}

// parseTaskFilter reads the optional "status" and "priority" query parameters.
// Empty parameters are treated as absent. Every malformed parameter is
// reported in a single *domain.ValidationError.
func parseTaskFilter(r *http.Request) (service.TaskFilter, error) {
	var filter service.TaskFilter
	var violations []string

	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			violations = append(violations, fmt.Sprintf("status must be one of %s, %s, %s",
				domain.TaskStatusPending, domain.TaskStatusInProgress, domain.TaskStatusDone))
		} else {
			filter.Status = &status
		}
	}

	if raw := strings.TrimSpace(query.Get("priority")); raw != "" {
		priority, err := strconv.Atoi(raw)
		if err != nil {
			violations = append(violations, "priority must be an integer")
		} else {
			filter.Priority = &priority
		}
	}

	if len(violations) > 0 {
		return service.TaskFilter{}, domain.NewValidationError(violations...)
	}
	return filter, nil
}
