package http

import (
	"net/http"
	"time"

	"github.com/vmartynenko/go-soupsync/internal/logger"
)

// withLogging emits one access-log line per request once the handler chain
// has finished, carrying the trace id placed on the context upstream.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
