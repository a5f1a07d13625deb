package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vmartynenko/go-soupsync/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

// withTraceID tags every request with a trace id (reused from the caller's
// header when present) and plants a child logger carrying it in the request
// context, so downstream handlers log through logger.FromRequest.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = utils.NewUUIDGenerator().Generate()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
