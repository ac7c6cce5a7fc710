package endpoints

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/getmockd/mockd-openai/pkg/chaos"
	"github.com/getmockd/mockd-openai/pkg/logging"
)

// Call is one recorded invocation of a route.
type Call struct {
	Method     string
	Path       string
	StatusCode int
}

// Route is a single method and path handled by a mock.
type Route struct {
	Name   string
	Method string
	Path   string

	injector *chaos.Injector
	mw       http.Handler
	log      *slog.Logger

	mu        sync.Mutex
	handler   http.HandlerFunc
	responder http.HandlerFunc
	calls     []Call
}

func newRoute(name, method, path string, cfg Config, handler http.HandlerFunc, log *slog.Logger) *Route {
	rt := &Route{
		Name:     name,
		Method:   method,
		Path:     path,
		injector: chaos.NewInjector(cfg.SideEffects()),
		log:      logging.OrNop(log),
		handler:  handler,
	}
	rt.mw = chaos.NewMiddleware(http.HandlerFunc(rt.dispatch), rt.injector, rt.log.With("route", name))
	return rt
}

// Pattern returns the ServeMux pattern for the route under base.
func (rt *Route) Pattern(base string) string {
	return rt.Method + " " + base + rt.Path
}

// ServeHTTP implements http.Handler.
func (rt *Route) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := chaos.NewStatusRecorder(w)
	rt.mw.ServeHTTP(rec, r)

	rt.mu.Lock()
	rt.calls = append(rt.calls, Call{
		Method:     r.Method,
		Path:       r.URL.Path,
		StatusCode: rec.Status(),
	})
	n := len(rt.calls)
	rt.mu.Unlock()

	rt.log.Debug("route call", "route", rt.Name, "call", n, "status", rec.Status())
}

func (rt *Route) dispatch(w http.ResponseWriter, r *http.Request) {
	rt.mu.Lock()
	h := rt.responder
	if h == nil {
		h = rt.handler
	}
	rt.mu.Unlock()
	h(w, r)
}

// SetResponder replaces the route's handler. Latency, failure injection and
// call counting still apply. Passing nil restores the default handler.
func (rt *Route) SetResponder(fn http.HandlerFunc) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.responder = fn
}

// CallCount returns how many times the route has been hit, including calls
// that failed by injection.
func (rt *Route) CallCount() int {
	return rt.injector.CallCount()
}

// Called reports whether the route has been hit at least once.
func (rt *Route) Called() bool {
	return rt.CallCount() > 0
}

// Calls returns a copy of the recorded calls.
func (rt *Route) Calls() []Call {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	out := make([]Call, len(rt.calls))
	copy(out, rt.calls)
	return out
}

// Injector exposes the route's fault injector, e.g. to change the failure
// budget mid-test.
func (rt *Route) Injector() *chaos.Injector {
	return rt.injector
}

// Reset clears the call counter and the recorded calls.
func (rt *Route) Reset() {
	rt.injector.Reset()
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.calls = nil
}
