// Package intercept routes outbound HTTP requests to an in-process handler.
//
// A Transport matches requests against a base URL. Matching requests are
// served by the handler on a separate goroutine and the response body is
// streamed back through an io.Pipe, so the handler only advances as fast as
// the client reads. Requests outside the base URL go to an optional
// fallback RoundTripper or fail with ErrNotIntercepted.
package intercept

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrNotIntercepted is returned for requests outside the base URL when no
// fallback transport is configured.
var ErrNotIntercepted = errors.New("intercept: request does not match base URL")

// Option configures a Transport.
type Option func(*Transport)

// WithFallback sends unmatched requests to rt.
func WithFallback(rt http.RoundTripper) Option {
	return func(t *Transport) {
		t.fallback = rt
	}
}

// WithPassthrough sends unmatched requests to http.DefaultTransport.
func WithPassthrough() Option {
	return WithFallback(http.DefaultTransport)
}

// Transport is an http.RoundTripper that serves requests under a base URL
// from an http.Handler.
type Transport struct {
	base     *url.URL
	handler  http.Handler
	fallback http.RoundTripper
}

// New creates a Transport for baseURL.
func New(baseURL string, handler http.Handler, opts ...Option) (*Transport, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("intercept: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("intercept: base URL %q must be absolute", baseURL)
	}
	if handler == nil {
		return nil, errors.New("intercept: handler is nil")
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	t := &Transport{base: u, handler: handler}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// BaseURL returns the base URL requests are matched against.
func (t *Transport) BaseURL() string {
	return t.base.String()
}

// Matches reports whether req would be served by the handler.
func (t *Transport) Matches(req *http.Request) bool {
	u := req.URL
	if u == nil {
		return false
	}
	if !strings.EqualFold(u.Scheme, t.base.Scheme) || !strings.EqualFold(u.Host, t.base.Host) {
		return false
	}
	if t.base.Path == "" {
		return true
	}
	return u.Path == t.base.Path || strings.HasPrefix(u.Path, t.base.Path+"/")
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.Matches(req) {
		if t.fallback != nil {
			return t.fallback.RoundTrip(req)
		}
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, fmt.Errorf("%w: %s %s", ErrNotIntercepted, req.Method, req.URL)
	}

	ctx := req.Context()
	inner := req.Clone(ctx)
	if inner.Body == nil {
		inner.Body = http.NoBody
	}
	inner.RequestURI = req.URL.RequestURI()
	inner.RemoteAddr = "127.0.0.1:0"

	pr, pw := io.Pipe()
	rw := newResponseWriter(pw)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				rw.abort(fmt.Errorf("intercept: handler panic: %v", p))
				return
			}
			rw.finish()
		}()
		defer inner.Body.Close()
		t.handler.ServeHTTP(rw, inner)
	}()

	select {
	case <-rw.ready:
	case <-ctx.Done():
		_ = pr.CloseWithError(ctx.Err())
		return nil, ctx.Err()
	}
	if rw.err != nil {
		_ = pr.Close()
		return nil, rw.err
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", rw.status, http.StatusText(rw.status)),
		StatusCode:    rw.status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        rw.sent,
		Body:          pr,
		ContentLength: -1,
		Request:       req,
	}, nil
}
