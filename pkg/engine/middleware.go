package engine

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getmockd/mockd-openai/internal/id"
	"github.com/getmockd/mockd-openai/pkg/chaos"
	"github.com/getmockd/mockd-openai/pkg/httputil"
	"github.com/getmockd/mockd-openai/pkg/logging"
)

// RequestIDHeader carries the generated request id on every response.
const RequestIDHeader = "X-Request-Id"

// MiddlewareChain manages the HTTP middleware stack in front of the routes.
type MiddlewareChain struct {
	log *slog.Logger
}

// NewMiddlewareChain creates a middleware chain.
func NewMiddlewareChain(log *slog.Logger) *MiddlewareChain {
	return &MiddlewareChain{log: logging.OrNop(log)}
}

// Wrap wraps handler with all middleware.
// The order is: access log -> request id -> handler
func (mc *MiddlewareChain) Wrap(handler http.Handler) http.Handler {
	h := requestIDMiddleware(handler)
	return accessLogMiddleware(h, mc.log)
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(RequestIDHeader, id.Request())
		next.ServeHTTP(w, r)
	})
}

func accessLogMiddleware(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := chaos.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)
		log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.Status(),
			"request_id", w.Header().Get(RequestIDHeader),
			"duration", time.Since(start),
		)
	})
}

// unmatched answers requests under the base path that no route handles.
func unmatched(w http.ResponseWriter, r *http.Request) {
	httputil.WriteAPIError(w, http.StatusNotFound, httputil.ErrTypeInvalidRequest, "unknown_url",
		fmt.Sprintf("Invalid URL (%s %s)", r.Method, r.URL.Path))
}
