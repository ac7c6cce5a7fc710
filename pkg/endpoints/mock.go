package endpoints

import (
	"log/slog"
	"net/http"

	"github.com/getmockd/mockd-openai/pkg/httputil"
	"github.com/getmockd/mockd-openai/pkg/logging"
	"github.com/getmockd/mockd-openai/pkg/stateful"
)

// StatefulMock is a resource mock that serves a set of routes.
type StatefulMock interface {
	// Name returns the resource name.
	Name() string
	// RegisterRoutes adds every route to mux, prefixed with base
	// (e.g. "/v1").
	RegisterRoutes(mux *http.ServeMux, base string)
	// Routes returns the mock's routes.
	Routes() []*Route
}

// baseMock carries what every resource mock shares.
type baseMock struct {
	name   string
	store  *stateful.StateStore
	cfg    Config
	log    *slog.Logger
	routes []*Route
}

func newBaseMock(name string, store *stateful.StateStore, cfg Config, log *slog.Logger) baseMock {
	if store == nil {
		store = stateful.NewStateStore()
	}
	return baseMock{
		name:  name,
		store: store,
		cfg:   cfg,
		log:   logging.Component(log, name),
	}
}

func (b *baseMock) route(name, method, path string, h http.HandlerFunc) *Route {
	rt := newRoute(b.name+"."+name, method, path, b.cfg, h, b.log)
	b.routes = append(b.routes, rt)
	return rt
}

// Name returns the resource name.
func (b *baseMock) Name() string { return b.name }

// Routes returns the mock's routes in registration order.
func (b *baseMock) Routes() []*Route { return b.routes }

// Store returns the state store the mock reads and writes.
func (b *baseMock) Store() *stateful.StateStore { return b.store }

// Config returns the mock configuration.
func (b *baseMock) Config() Config { return b.cfg }

// RegisterRoutes adds every route to mux.
func (b *baseMock) RegisterRoutes(mux *http.ServeMux, base string) {
	for _, rt := range b.routes {
		mux.Handle(rt.Pattern(base), rt)
	}
}

// ResetRoutes clears the counters of every route.
func (b *baseMock) ResetRoutes() {
	for _, rt := range b.routes {
		rt.Reset()
	}
}

// threadMissing applies the thread existence check when enabled.
func (b *baseMock) threadMissing(threadID string) bool {
	return b.cfg.ValidateThreadExists && !b.store.ThreadExists(threadID)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	if err := httputil.DecodeJSON(r, v, allowEmpty); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return false
	}
	return true
}

func listQuery(r *http.Request) stateful.ListQuery {
	return stateful.ParseListQuery(r.URL.Query())
}
