package middleware

import (
	"log/slog"
	"net/http"

	"github.com/nollyprod/stagehand-api/internal/api/shared"
)

// TraceMiddleware assigns every request a trace ID and logs its arrival.
// Apply it first so the ID is visible to all downstream handlers.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.Debug("request started",
			slog.String("trace_id", shared.GetTraceID(ctx)),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
