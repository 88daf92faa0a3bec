package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"
)

// ContextKey is the type used for request-scoped context values.
type ContextKey string

// TraceIDKey holds the per-request trace ID in the context.
const TraceIDKey ContextKey = "traceID"

const traceIDBytes = 16

// SetTraceID attaches a fresh trace ID to the context. Logs and error
// responses produced while handling the request carry the same ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID())
}

// GetTraceID returns the trace ID from the context, or "" if none was set.
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDKey).(string)
	return id
}

func newTraceID() string {
	b := make([]byte, traceIDBytes)
	if _, err := rand.Read(b); err != nil {
		// Trace IDs only need uniqueness, not secrecy, so a timestamp-based
		// ID is an acceptable stand-in when the random source fails.
		slog.Error("failed to generate random trace ID", "error", err)
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], uint64(time.Now().Unix()))
	}
	return hex.EncodeToString(b)
}
