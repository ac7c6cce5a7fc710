package testing

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/getmockd/mockd-openai/pkg/chaos"
	"github.com/getmockd/mockd-openai/pkg/endpoints"
	"github.com/getmockd/mockd-openai/pkg/engine"
	"github.com/getmockd/mockd-openai/pkg/intercept"
)

// TestAPIKey is the API key OpenAIClient sends.
const TestAPIKey = "sk-test"

// MockServer is a test helper wrapping an OpenAI mock.
// It records every request it serves for assertions.
type MockServer struct {
	t         testing.TB
	mock      *engine.OpenAIMock
	handler   http.Handler
	transport *intercept.Transport
	httpSrv   *httptest.Server
	baseURL   string

	mu       sync.Mutex
	requests []RequestLog
}

// New creates a mock for testing. It is stopped automatically when the
// test completes.
func New(t testing.TB, cfg engine.Config, opts ...engine.Option) *MockServer {
	t.Helper()

	mock, err := engine.New(cfg, opts...)
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}

	m := &MockServer{t: t, mock: mock}
	m.handler = m.wrapHandler(mock)

	m.transport, err = intercept.New(mock.BaseURL(), m.handler)
	if err != nil {
		t.Fatalf("failed to create transport: %v", err)
	}

	t.Cleanup(m.Stop)
	return m
}

// Mock returns the underlying engine for per-route access and configuration.
func (m *MockServer) Mock() *engine.OpenAIMock {
	return m.mock
}

// Start serves the mock on a local listener and returns its API root,
// e.g. http://127.0.0.1:54321/v1. Calling Start twice returns the same URL.
func (m *MockServer) Start() string {
	m.t.Helper()

	if m.httpSrv != nil {
		return m.baseURL
	}
	m.httpSrv = httptest.NewServer(m.handler)
	m.baseURL = m.httpSrv.URL + m.mock.BasePath()
	return m.baseURL
}

// Stop closes the listener, if one was started.
func (m *MockServer) Stop() {
	if m.httpSrv != nil {
		m.httpSrv.Close()
		m.httpSrv = nil
	}
}

// URL returns the API root requests should use: the listener after Start,
// otherwise the mocked base URL.
func (m *MockServer) URL() string {
	if m.baseURL != "" {
		return m.baseURL
	}
	return m.mock.BaseURL()
}

// Client returns an HTTP client whose requests to the mocked base URL are
// served in-process.
func (m *MockServer) Client() *http.Client {
	return &http.Client{Transport: m.transport}
}

// OpenAIClient returns an SDK client wired to the mock. SDK retries are
// disabled so injected failures surface to the caller; pass
// option.WithMaxRetries to turn them back on.
func (m *MockServer) OpenAIClient(opts ...option.RequestOption) openai.Client {
	base := []option.RequestOption{
		option.WithAPIKey(TestAPIKey),
		option.WithBaseURL(m.URL()),
		option.WithMaxRetries(0),
	}
	if m.httpSrv == nil {
		base = append(base, option.WithHTTPClient(m.Client()))
	}
	return openai.NewClient(append(base, opts...)...)
}

// Reset clears all state, route counters and recorded requests.
func (m *MockServer) Reset() {
	m.t.Helper()

	m.mock.Reset()
	m.mu.Lock()
	m.requests = nil
	m.mu.Unlock()
}

// wrapHandler records each request and the status it was answered with.
func (m *MockServer) wrapHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		headers := make(map[string]string, len(r.Header))
		for k, v := range r.Header {
			if len(v) > 0 {
				headers[k] = v[0]
			}
		}

		rec := chaos.NewStatusRecorder(w)
		h.ServeHTTP(rec, r)

		m.mu.Lock()
		m.requests = append(m.requests, RequestLog{
			Method:      r.Method,
			Path:        strings.TrimPrefix(r.URL.Path, m.mock.BasePath()),
			Headers:     headers,
			Body:        string(body),
			QueryString: r.URL.RawQuery,
			StatusCode:  rec.Status(),
		})
		m.mu.Unlock()
	})
}

// Requests returns all recorded requests in arrival order.
func (m *MockServer) Requests() []RequestLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RequestLog, len(m.requests))
	copy(out, m.requests)
	return out
}

// AssertCalled asserts that an endpoint was called at least once.
func (m *MockServer) AssertCalled(t testing.TB, method, path string) {
	t.Helper()

	if m.countCalls(method, path) == 0 {
		t.Errorf("expected %s %s to be called, but it was not called", method, path)
	}
}

// AssertCalledTimes asserts that an endpoint was called exactly n times.
func (m *MockServer) AssertCalledTimes(t testing.TB, method, path string, times int) {
	t.Helper()

	count := m.countCalls(method, path)
	if count != times {
		t.Errorf("expected %s %s to be called %d times, but was called %d times",
			method, path, times, count)
	}
}

// AssertNotCalled asserts that an endpoint was not called.
func (m *MockServer) AssertNotCalled(t testing.TB, method, path string) {
	t.Helper()

	count := m.countCalls(method, path)
	if count > 0 {
		t.Errorf("expected %s %s to not be called, but it was called %d times",
			method, path, count)
	}
}

// AssertRouteCalledTimes asserts a route's call counter, which counts
// injected failures as well as served calls.
func (m *MockServer) AssertRouteCalledTimes(t testing.TB, route *endpoints.Route, times int) {
	t.Helper()

	if got := route.CallCount(); got != times {
		t.Errorf("expected route %s to be called %d times, but was called %d times",
			route.Name, times, got)
	}
}

func (m *MockServer) countCalls(method, path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, req := range m.requests {
		if strings.EqualFold(req.Method, method) && matchesPath(req.Path, path) {
			count++
		}
	}
	return count
}

// matchesPath checks if a request path matches the expected path pattern.
// Supports exact matching and {param} segments.
func matchesPath(actual, expected string) bool {
	if actual == expected {
		return true
	}

	actualParts := strings.Split(actual, "/")
	expectedParts := strings.Split(expected, "/")
	if len(actualParts) != len(expectedParts) {
		return false
	}

	for i, part := range expectedParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			if actualParts[i] == "" {
				return false
			}
			continue
		}
		if part != actualParts[i] {
			return false
		}
	}
	return true
}
