package http

import (
	"net/http"
	"time"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
)

// withLogging writes one access-log line per request with the final status,
// response size and handling duration.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		decorated := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(decorated, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", decorated.status).
			Int("size", decorated.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
