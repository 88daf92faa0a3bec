package service

import "errors"

// Common service errors - sentinel errors callers check with errors.Is().
// The API layer maps these to HTTP status codes.
var (
	// ErrInvalidPayload indicates a submission payload that failed
	// validation. The task is never enqueued. Maps to HTTP 400.
	ErrInvalidPayload = errors.New("invalid task payload")

	// ErrUnknownTaskType indicates a submission with an unsupported task
	// type. Maps to HTTP 400.
	ErrUnknownTaskType = errors.New("unknown task type")
)
