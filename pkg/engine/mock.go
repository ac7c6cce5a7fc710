package engine

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/getmockd/mockd-openai/pkg/endpoints"
	"github.com/getmockd/mockd-openai/pkg/intercept"
	"github.com/getmockd/mockd-openai/pkg/logging"
	"github.com/getmockd/mockd-openai/pkg/stateful"
)

// DefaultBaseURL is the API root requests are matched against.
const DefaultBaseURL = "https://api.openai.com/v1"

// Config configures an OpenAIMock.
type Config struct {
	// BaseURL is the API root (default DefaultBaseURL).
	BaseURL string

	Assistants endpoints.Config
	Threads    endpoints.Config
	Messages   endpoints.Config
	Runs       endpoints.Config
}

// Option is a functional option for configuring an OpenAIMock.
type Option func(*OpenAIMock)

// WithStore makes the mock use an existing state store.
func WithStore(store *stateful.StateStore) Option {
	return func(m *OpenAIMock) {
		if store != nil {
			m.store = store
		}
	}
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *OpenAIMock) {
		if log != nil {
			m.log = log
		}
	}
}

// OpenAIMock is a mocked Assistants API.
type OpenAIMock struct {
	cfg       Config
	base      *url.URL
	store     *stateful.StateStore
	log       *slog.Logger
	mux       *http.ServeMux
	handler   http.Handler
	transport *intercept.Transport

	Assistants *endpoints.AssistantsMock
	Threads    *endpoints.ThreadsMock
	Messages   *endpoints.MessagesMock
	Runs       *endpoints.RunsMock
}

// New creates a mock from cfg.
func New(cfg Config, opts ...Option) (*OpenAIMock, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", cfg.BaseURL)
	}
	base.Path = strings.TrimSuffix(base.Path, "/")

	for name, c := range map[string]endpoints.Config{
		stateful.ResourceAssistants: cfg.Assistants,
		stateful.ResourceThreads:    cfg.Threads,
		stateful.ResourceMessages:   cfg.Messages,
		stateful.ResourceRuns:       cfg.Runs,
	} {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	m := &OpenAIMock{
		cfg:  cfg,
		base: base,
		log:  logging.Nop(),
		mux:  http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = stateful.NewStateStore()
	}

	m.Assistants = endpoints.NewAssistantsMock(m.store, cfg.Assistants, m.log)
	m.Threads = endpoints.NewThreadsMock(m.store, cfg.Threads, m.log)
	m.Messages = endpoints.NewMessagesMock(m.store, cfg.Messages, m.log)
	m.Runs = endpoints.NewRunsMock(m.store, cfg.Runs, m.log)

	for _, mock := range m.Mocks() {
		mock.RegisterRoutes(m.mux, base.Path)
	}
	m.mux.HandleFunc(base.Path+"/", unmatched)
	m.handler = NewMiddlewareChain(m.log).Wrap(m.mux)

	m.transport, err = intercept.New(base.String(), m.handler)
	if err != nil {
		return nil, err
	}

	m.log.Debug("mock created", "base_url", base.String(), "routes", len(m.Routes()))
	return m, nil
}

// BaseURL returns the API root.
func (m *OpenAIMock) BaseURL() string {
	return m.base.String()
}

// BasePath returns the path part of the API root, e.g. "/v1".
func (m *OpenAIMock) BasePath() string {
	return m.base.Path
}

// Store returns the shared state store.
func (m *OpenAIMock) Store() *stateful.StateStore {
	return m.store
}

// Config returns the configuration the mock was built from.
func (m *OpenAIMock) Config() Config {
	return m.cfg
}

// Mocks returns the resource mocks.
func (m *OpenAIMock) Mocks() []endpoints.StatefulMock {
	return []endpoints.StatefulMock{m.Assistants, m.Threads, m.Messages, m.Runs}
}

// Routes returns every route of every resource mock.
func (m *OpenAIMock) Routes() []*endpoints.Route {
	var routes []*endpoints.Route
	for _, mock := range m.Mocks() {
		routes = append(routes, mock.Routes()...)
	}
	return routes
}

// ServeHTTP implements http.Handler.
func (m *OpenAIMock) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// Transport returns the in-process RoundTripper for the base URL. Requests
// to other hosts fail.
func (m *OpenAIMock) Transport() *intercept.Transport {
	return m.transport
}

// NewTransport returns an in-process RoundTripper with extra options, e.g.
// intercept.WithPassthrough to let other hosts through.
func (m *OpenAIMock) NewTransport(opts ...intercept.Option) (*intercept.Transport, error) {
	return intercept.New(m.base.String(), m.handler, opts...)
}

// HTTPClient returns an http.Client whose requests to the base URL are
// served by the mock.
func (m *OpenAIMock) HTTPClient() *http.Client {
	return &http.Client{Transport: m.transport}
}

// Reset clears the state store and every route's call history.
func (m *OpenAIMock) Reset() *stateful.ResetResponse {
	for _, rt := range m.Routes() {
		rt.Reset()
	}
	resp := m.store.Reset()
	m.log.Debug("mock reset", "cleared", resp.Total)
	return resp
}
