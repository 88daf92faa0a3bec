// Package service provides the application-level planning service: it
// validates task submissions, hands them to the background runner through
// the event emitter, and exposes task status reads and cancellation.
package service
