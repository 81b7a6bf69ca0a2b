package logging

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/evcraddock/threads/internal/metrics"
)

// quietPaths are polled by probes and scrapers; they are counted but not logged.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogger is middleware that logs HTTP requests and records request metrics.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		metrics.ObserveRequest(r.Method, rw.status, duration)

		if quietPaths[r.URL.Path] {
			return
		}

		level := slog.LevelInfo
		if rw.status >= 500 {
			level = slog.LevelError
		} else if rw.status >= 400 {
			level = slog.LevelWarn
		}

		slog.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", rw.status,
			"duration", duration.String(),
			"ip", r.RemoteAddr,
		)
	})
}
