// Package events defines the task submission event and the emitter that
// decouples the submission gateway from the background task runner.
package events
