package intercept

import (
	"io"
	"net/http"
)

// responseWriter hands the status and headers to RoundTrip once they are
// written, then streams the body through a pipe.
type responseWriter struct {
	header http.Header
	pw     *io.PipeWriter

	wroteHeader bool
	status      int
	sent        http.Header
	err         error
	ready       chan struct{}
}

func newResponseWriter(pw *io.PipeWriter) *responseWriter {
	return &responseWriter{
		header: make(http.Header),
		pw:     pw,
		ready:  make(chan struct{}),
	}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = status
	w.sent = w.header.Clone()
	close(w.ready)
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.pw.Write(p)
}

// Flush is a no-op: pipe writes return only once the reader has them.
func (w *responseWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
}

func (w *responseWriter) finish() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	_ = w.pw.Close()
}

func (w *responseWriter) abort(err error) {
	if !w.wroteHeader {
		w.err = err
		w.WriteHeader(http.StatusInternalServerError)
	}
	_ = w.pw.CloseWithError(err)
}
