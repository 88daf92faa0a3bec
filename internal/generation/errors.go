package generation

import "errors"

// Common errors returned by generative-backend adapters. Handlers treat
// every one of these as a silent fallback trigger, never as a task failure.
var (
	// ErrBackendUnavailable is returned when no backend is configured or
	// the backend cannot be reached
	ErrBackendUnavailable = errors.New("generative backend unavailable")

	// ErrBackendTimeout is returned when a backend call exceeds its
	// bounded deadline
	ErrBackendTimeout = errors.New("generative backend call timed out")

	// ErrMalformedResponse is returned when the backend response cannot
	// be parsed into the requested shape
	ErrMalformedResponse = errors.New("malformed response from generative backend")

	// ErrContentBlocked is returned when the backend blocks the content
	// due to safety filters
	ErrContentBlocked = errors.New("content blocked by backend safety filters")

	// ErrTransientFailure is returned for temporary errors that did not
	// resolve within the retry budget
	ErrTransientFailure = errors.New("transient generative backend failure")

	// ErrInvalidConfig is returned when the adapter configuration is invalid
	ErrInvalidConfig = errors.New("invalid generative backend configuration")
)
