package sse

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Encoder handles SSE message formatting per W3C specification.
// See: https://html.spec.whatwg.org/multipage/server-sent-events.html
type Encoder struct{}

// NewEncoder creates a new SSE encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// FormatEvent formats an event into wire format.
func (e *Encoder) FormatEvent(event *Event) (string, error) {
	if event == nil {
		return "", ErrInvalidEvent
	}

	var sb strings.Builder

	if event.Comment != "" {
		sb.WriteString(e.FormatComment(event.Comment))
	}

	if event.Type != "" {
		if strings.ContainsAny(event.Type, "\r\n") {
			return "", fmt.Errorf("%w: event type contains a newline", ErrInvalidEvent)
		}
		sb.WriteString(fieldEvent)
		sb.WriteString(event.Type)
		sb.WriteByte('\n')
	}

	if event.ID != "" {
		if strings.ContainsAny(event.ID, "\r\n") {
			return "", fmt.Errorf("%w: event id contains a newline", ErrInvalidEvent)
		}
		sb.WriteString(fieldID)
		sb.WriteString(event.ID)
		sb.WriteByte('\n')
	}

	if event.Retry > 0 {
		sb.WriteString(fieldRetry)
		sb.WriteString(strconv.Itoa(event.Retry))
		sb.WriteByte('\n')
	}

	dataStr, err := e.formatData(event.Data)
	if err != nil {
		return "", err
	}
	if len(dataStr) > MaxEventDataSize {
		return "", ErrEventTooLarge
	}

	// Multiline data becomes multiple data: fields
	for _, line := range strings.Split(dataStr, "\n") {
		sb.WriteString(fieldData)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	// Blank line dispatches the event
	sb.WriteByte('\n')

	return sb.String(), nil
}

// FormatComment formats a comment line.
// Comments start with : and are ignored by EventSource clients.
func (e *Encoder) FormatComment(comment string) string {
	var sb strings.Builder
	for _, line := range strings.Split(comment, "\n") {
		sb.WriteString(fieldComment)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatKeepalive returns a keepalive comment.
func (e *Encoder) FormatKeepalive() string {
	return ": keepalive\n\n"
}

// formatData converts event data to string format.
func (e *Encoder) formatData(data any) (string, error) {
	if data == nil {
		return "", nil
	}

	switch v := data.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to marshal event data: %w", err)
		}
		return string(jsonBytes), nil
	}
}
