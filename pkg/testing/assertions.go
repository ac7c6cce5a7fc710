package testing

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

// RequestLog represents a recorded HTTP request for assertions.
type RequestLog struct {
	// Method is the HTTP method (GET, POST, etc.)
	Method string
	// Path is the request path relative to the API root, e.g. /threads/thread_abc
	Path string
	// Headers are the request headers (first value per key)
	Headers map[string]string
	// Body is the request body content
	Body string
	// QueryString is the raw query string
	QueryString string
	// StatusCode is the status the mock answered with
	StatusCode int
}

// AssertJSONBody asserts that the request body is JSON equal to expected.
func (r *RequestLog) AssertJSONBody(t testing.TB, expected string) {
	t.Helper()
	assert.JSONEq(t, expected, r.Body)
}

// AssertBodyContains asserts that the request body contains substr.
func (r *RequestLog) AssertBodyContains(t testing.TB, substr string) {
	t.Helper()
	assert.Contains(t, r.Body, substr)
}

// AssertHeader asserts a request header value. Keys are canonicalized.
func (r *RequestLog) AssertHeader(t testing.TB, key, expected string) {
	t.Helper()

	actual, ok := r.header(key)
	if !assert.True(t, ok, "header %q not found in request", key) {
		return
	}
	assert.Equal(t, expected, actual, "header %q", key)
}

// AssertHeaderExists asserts that a request header is present.
func (r *RequestLog) AssertHeaderExists(t testing.TB, key string) {
	t.Helper()

	_, ok := r.header(key)
	assert.True(t, ok, "header %q not found in request", key)
}

func (r *RequestLog) header(key string) (string, bool) {
	v, ok := r.Headers[http.CanonicalHeaderKey(key)]
	return v, ok
}

// AssertQueryParam asserts a query parameter value.
func (r *RequestLog) AssertQueryParam(t testing.TB, key, expected string) {
	t.Helper()

	q, err := url.ParseQuery(r.QueryString)
	if !assert.NoError(t, err, "query string %q", r.QueryString) {
		return
	}
	if !assert.True(t, q.Has(key), "query param %q not found in %q", key, r.QueryString) {
		return
	}
	assert.Equal(t, expected, q.Get(key), "query param %q", key)
}

// AssertStatus asserts the status the mock answered with.
func (r *RequestLog) AssertStatus(t testing.TB, expected int) {
	t.Helper()
	assert.Equal(t, expected, r.StatusCode, "%s %s", r.Method, r.Path)
}

// JSONField extracts a field from the request body using a gjson path,
// e.g. "metadata.user" or "messages.0.content".
func (r *RequestLog) JSONField(path string) gjson.Result {
	return gjson.Get(r.Body, path)
}

// AssertJSONField asserts that a JSON field in the request body has the
// expected value. Numbers compare as float64.
func (r *RequestLog) AssertJSONField(t testing.TB, path string, expected any) {
	t.Helper()

	res := r.JSONField(path)
	if !assert.True(t, res.Exists(), "JSON field %q not found in request body: %s", path, r.Body) {
		return
	}
	assert.Equal(t, expected, res.Value(), "JSON field %q", path)
}
