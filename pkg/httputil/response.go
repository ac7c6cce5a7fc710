// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getmockd/mockd-openai/pkg/schema"
)

// Error types used in API error envelopes.
const (
	ErrTypeInvalidRequest = "invalid_request_error"
	ErrTypeServer         = "server_error"
)

// MaxBodySize bounds request bodies read by DecodeJSON.
const MaxBodySize = 10 << 20

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteStatus writes a bare status code with no body.
func WriteStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// WriteAPIError writes an error in the API's {"error": {...}} envelope.
func WriteAPIError(w http.ResponseWriter, status int, errType, code, message string) {
	detail := schema.ErrorDetail{
		Message: message,
		Type:    errType,
	}
	if code != "" {
		detail.Code = &code
	}
	WriteJSON(w, status, schema.ErrorBody{Error: detail})
}

// WriteCreated writes a 201 Created response with the created resource.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteNotFound writes a 404 with no body.
func WriteNotFound(w http.ResponseWriter) {
	WriteStatus(w, http.StatusNotFound)
}

// WriteBadRequest writes a 400 invalid_request_error.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteAPIError(w, http.StatusBadRequest, ErrTypeInvalidRequest, "", message)
}

// DecodeJSON reads the request body into v.
// An empty body leaves v untouched when allowEmpty is set.
func DecodeJSON(r *http.Request, v any, allowEmpty bool) error {
	if r.Body == nil {
		if allowEmpty {
			return nil
		}
		return ErrEmptyBody
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	if len(data) == 0 {
		if allowEmpty {
			return nil
		}
		return ErrEmptyBody
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
