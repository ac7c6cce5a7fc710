package chaos

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/getmockd/mockd-openai/pkg/logging"
)

// Middleware wraps an http.Handler with deterministic fault injection.
type Middleware struct {
	handler  http.Handler
	injector *Injector
	log      *slog.Logger
}

// NewMiddleware creates a new chaos middleware.
func NewMiddleware(handler http.Handler, injector *Injector, log *slog.Logger) *Middleware {
	return &Middleware{
		handler:  handler,
		injector: injector,
		log:      logging.OrNop(log),
	}
}

// ServeHTTP implements http.Handler with fault injection.
func (m *Middleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	inv, err := m.injector.Next(ctx)
	if err != nil {
		// Client went away during the latency delay.
		m.log.Debug("request cancelled during latency", "call", inv.Call, "error", err)
		return
	}

	if inv.Injected {
		m.log.Debug("injecting failure", "call", inv.Call, "failures", inv.Failures)
		m.injector.InjectError(w, inv)
		return
	}

	m.handler.ServeHTTP(w, r.WithContext(WithInvocation(ctx, inv)))
}

// Injector returns the injector used by the middleware.
func (m *Middleware) Injector() *Injector {
	return m.injector
}

// ContextKey is a type for context keys
type ContextKey string

const (
	// InvocationContextKey is the key for storing the invocation in context
	InvocationContextKey ContextKey = "chaos.invocation"
)

// WithInvocation adds the invocation to the context.
func WithInvocation(ctx context.Context, inv Invocation) context.Context {
	return context.WithValue(ctx, InvocationContextKey, inv)
}

// GetInvocation retrieves the invocation from the context. Handlers called
// outside the middleware see the zero Invocation.
func GetInvocation(ctx context.Context) Invocation {
	if v, ok := ctx.Value(InvocationContextKey).(Invocation); ok {
		return v
	}
	return Invocation{}
}
