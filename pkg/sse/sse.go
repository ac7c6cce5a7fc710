// Package sse provides Server-Sent Events framing for streamed responses.
// It implements the event stream format per the W3C specification.
package sse

import (
	"errors"
)

// SSE-related constants per W3C specification
const (
	// ContentTypeEventStream is the MIME type for SSE responses
	ContentTypeEventStream = "text/event-stream"

	// MaxEventDataSize is the maximum size of event data in bytes
	MaxEventDataSize = 1 << 20 // 1MB
)

// SSE field prefixes per W3C specification
const (
	fieldEvent   = "event:"
	fieldData    = "data:"
	fieldID      = "id:"
	fieldRetry   = "retry:"
	fieldComment = ":"
)

// Event is a single SSE event.
type Event struct {
	// Type is the event name (the "event:" field).
	Type string
	// ID is the optional event id.
	ID string
	// Data is the payload. Strings and byte slices are written as-is,
	// anything else is JSON encoded.
	Data any
	// Retry is the reconnection time in milliseconds (0 = omit).
	Retry int
	// Comment is written as a comment line before the event.
	Comment string
}

// Errors
var (
	// ErrStreamClosed indicates the stream has been closed
	ErrStreamClosed = errors.New("sse: stream closed")

	// ErrInvalidEvent indicates a nil event or invalid field
	ErrInvalidEvent = errors.New("sse: invalid event")

	// ErrEventTooLarge indicates the event data exceeds size limit
	ErrEventTooLarge = errors.New("sse: event data too large")

	// ErrFlusherNotSupported indicates the response writer doesn't support flushing
	ErrFlusherNotSupported = errors.New("sse: flusher not supported")
)
