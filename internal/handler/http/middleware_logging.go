package http

import (
	"net/http"
	"time"

	"github.com/agrostack/fieldsync/internal/logger"
)

// withLogging emits one access log line per request once the downstream
// handler has returned. The line carries the trace ID because the logger
// comes out of the request context that withTraceID populated.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		status := lw.status
		if status == 0 {
			status = http.StatusOK
		}

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
