// Package api contains the HTTP handlers for the task submission and
// polling endpoints, plus the error-to-status mapping that keeps internal
// error details out of client responses.
package api
