package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskops-api/internal/api/shared"
	"github.com/phrazzld/taskops-api/internal/domain"
	"github.com/phrazzld/taskops-api/internal/service"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidTaskStatus):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, domain.ErrValidation):
		return shared.ValidationErrorMessage
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid task ID"
	case errors.Is(err, domain.ErrInvalidTaskStatus):
		return "Invalid task status"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the response for err:
//   - validation failures become 400 with every violation in "details"
//   - a missing task becomes a bare 404 with no body
//   - anything else goes through MapErrorToStatusCode and is logged
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		shared.RespondWithValidationError(w, r, verr.Violations)
		return
	}

	status := MapErrorToStatusCode(err)
	if status == http.StatusNotFound {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
