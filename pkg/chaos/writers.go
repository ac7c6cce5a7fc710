package chaos

import (
	"net/http"
)

// StatusRecorder captures the status code written through it.
// It forwards Flush so streaming responses keep working.
type StatusRecorder struct {
	w      http.ResponseWriter
	status int
}

// NewStatusRecorder wraps w.
func NewStatusRecorder(w http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{w: w}
}

// Header returns the header map
func (sr *StatusRecorder) Header() http.Header {
	return sr.w.Header()
}

// WriteHeader records and writes the status code
func (sr *StatusRecorder) WriteHeader(statusCode int) {
	if sr.status == 0 {
		sr.status = statusCode
	}
	sr.w.WriteHeader(statusCode)
}

// Write writes the body, recording an implicit 200
func (sr *StatusRecorder) Write(p []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	return sr.w.Write(p)
}

// Flush flushes the underlying writer if it supports flushing
func (sr *StatusRecorder) Flush() {
	if f, ok := sr.w.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter
func (sr *StatusRecorder) Unwrap() http.ResponseWriter {
	return sr.w
}

// Status returns the recorded status, or 0 if nothing was written.
func (sr *StatusRecorder) Status() int {
	return sr.status
}
