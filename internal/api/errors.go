package api

import (
	"errors"
	"net/http"

	"github.com/nollyprod/stagehand-api/internal/service"
	"github.com/nollyprod/stagehand-api/internal/task"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, service.ErrInvalidPayload),
		errors.Is(err, service.ErrUnknownTaskType):
		return http.StatusBadRequest

	// Conflict errors: the task exists but is not in a cancelable state
	case errors.Is(err, task.ErrTaskNotCancelable),
		errors.Is(err, task.ErrTaskTerminal):
		return http.StatusConflict

	// Backpressure
	case errors.Is(err, task.ErrQueueFull):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrUnknownTaskType):
		return "Unknown task type"

	case errors.Is(err, service.ErrInvalidPayload):
		// Validation failures are safe and useful to surface verbatim.
		return err.Error()

	case errors.Is(err, task.ErrTaskNotCancelable),
		errors.Is(err, task.ErrTaskTerminal):
		return "Task is not cancelable"

	case errors.Is(err, task.ErrQueueFull):
		return "Task queue is full, try again later"

	default:
		return "An unexpected error occurred"
	}
}
