package sse

import (
	"io"
	"net/http"
	"sync"
)

// Writer writes SSE events to an HTTP response, flushing after each one.
type Writer struct {
	mu      sync.Mutex
	w       io.Writer
	flusher http.Flusher
	enc     *Encoder
	closed  bool

	eventsSent int64
	bytesSent  int64
}

// NewWriter prepares w for streaming: it sets the event-stream headers and
// writes the status code. The writer must support http.Flusher.
func NewWriter(w http.ResponseWriter, status int) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrFlusherNotSupported
	}

	h := w.Header()
	h.Set("Content-Type", ContentTypeEventStream)
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(status)
	flusher.Flush()

	return &Writer{
		w:       w,
		flusher: flusher,
		enc:     NewEncoder(),
	}, nil
}

// Send formats and writes one event.
func (sw *Writer) Send(event *Event) error {
	frame, err := sw.enc.FormatEvent(event)
	if err != nil {
		return err
	}
	return sw.write(frame)
}

// SendComment writes a comment frame.
func (sw *Writer) SendComment(comment string) error {
	return sw.write(sw.enc.FormatComment(comment) + "\n")
}

// Close marks the writer closed. Later sends fail with ErrStreamClosed.
func (sw *Writer) Close() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.closed = true
}

// EventsSent returns the number of frames written.
func (sw *Writer) EventsSent() int64 {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.eventsSent
}

// BytesSent returns the number of bytes written.
func (sw *Writer) BytesSent() int64 {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.bytesSent
}

func (sw *Writer) write(frame string) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.closed {
		return ErrStreamClosed
	}

	n, err := io.WriteString(sw.w, frame)
	sw.bytesSent += int64(n)
	if err != nil {
		return err
	}
	sw.eventsSent++
	sw.flusher.Flush()
	return nil
}
