package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaJSON is the JSON Schema scenario files are validated against.
const SchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "baseURL": {"type": "string", "pattern": "^https?://[^/]+"},
    "log": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "level": {"enum": ["debug", "info", "warn", "warning", "error"]},
        "format": {"enum": ["text", "json"]}
      }
    },
    "assistants": {"$ref": "#/$defs/resource"},
    "threads": {"$ref": "#/$defs/resource"},
    "messages": {"$ref": "#/$defs/threadScoped"},
    "runs": {"$ref": "#/$defs/runs"}
  },
  "$defs": {
    "latency": {
      "oneOf": [
        {"type": "string", "pattern": "^([0-9]+(\\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$"},
        {"type": "number", "minimum": 0}
      ]
    },
    "failures": {"type": "integer", "minimum": 0},
    "resource": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "latency": {"$ref": "#/$defs/latency"},
        "failures": {"$ref": "#/$defs/failures"}
      }
    },
    "threadScoped": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "latency": {"$ref": "#/$defs/latency"},
        "failures": {"$ref": "#/$defs/failures"},
        "validateThreadExists": {"type": "boolean"}
      }
    },
    "runs": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "latency": {"$ref": "#/$defs/latency"},
        "failures": {"$ref": "#/$defs/failures"},
        "validateThreadExists": {"type": "boolean"},
        "validateAssistantExists": {"type": "boolean"},
        "sequence": {
          "type": "object",
          "additionalProperties": false,
          "properties": {
            "create": {"type": "array", "items": {"$ref": "#/$defs/partialRun"}},
            "retrieve": {"type": "array", "items": {"$ref": "#/$defs/partialRun"}}
          }
        }
      }
    },
    "timestamp": {"type": "integer", "minimum": 0},
    "partialRun": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "status": {
          "enum": ["queued", "in_progress", "requires_action", "cancelling",
                   "cancelled", "failed", "completed", "expired"]
        },
        "required_action": {
          "type": "object",
          "required": ["type", "submit_tool_outputs"],
          "properties": {
            "type": {"const": "submit_tool_outputs"},
            "submit_tool_outputs": {
              "type": "object",
              "required": ["tool_calls"],
              "properties": {
                "tool_calls": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["id", "type", "function"],
                    "properties": {
                      "id": {"type": "string"},
                      "type": {"const": "function"},
                      "function": {
                        "type": "object",
                        "required": ["name", "arguments"],
                        "properties": {
                          "name": {"type": "string"},
                          "arguments": {"type": "string"}
                        }
                      }
                    }
                  }
                }
              }
            }
          }
        },
        "last_error": {
          "type": "object",
          "properties": {
            "code": {"enum": ["server_error", "rate_limit_exceeded", "invalid_prompt"]},
            "message": {"type": "string"}
          }
        },
        "expires_at": {"$ref": "#/$defs/timestamp"},
        "started_at": {"$ref": "#/$defs/timestamp"},
        "cancelled_at": {"$ref": "#/$defs/timestamp"},
        "failed_at": {"$ref": "#/$defs/timestamp"},
        "completed_at": {"$ref": "#/$defs/timestamp"},
        "model": {"type": "string"},
        "instructions": {"type": "string"},
        "tools": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["type"],
            "properties": {
              "type": {"enum": ["code_interpreter", "retrieval", "file_search", "function"]},
              "function": {"type": "object", "required": ["name"]}
            }
          }
        },
        "file_ids": {"type": "array", "items": {"type": "string"}}
      }
    }
  }
}`

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func scenarioSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("scenario.json", strings.NewReader(SchemaJSON)); err != nil {
			compileErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile("scenario.json")
	})
	return compiledSchema, compileErr
}

// SchemaValidationError represents a single config validation error.
type SchemaValidationError struct {
	Path    string // Config path, e.g., "runs.sequence.create.0.status"
	Message string
}

func (e SchemaValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// SchemaValidationResult contains all validation errors for a document.
type SchemaValidationResult struct {
	Errors []SchemaValidationError
}

// IsValid returns true if there are no validation errors.
func (r *SchemaValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *SchemaValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// AddError adds a validation error.
func (r *SchemaValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, SchemaValidationError{Path: path, Message: message})
}

// ValidateDocument validates a decoded YAML or JSON document against the
// scenario schema.
func ValidateDocument(doc any) *SchemaValidationResult {
	result := &SchemaValidationResult{}

	sch, err := scenarioSchema()
	if err != nil {
		result.AddError("", fmt.Sprintf("schema compilation error: %v", err))
		return result
	}

	// Normalize to JSON types: YAML decodes integers as int.
	raw, err := json.Marshal(doc)
	if err != nil {
		result.AddError("", fmt.Sprintf("document is not JSON-compatible: %v", err))
		return result
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var normalized any
	if err := dec.Decode(&normalized); err != nil {
		result.AddError("", err.Error())
		return result
	}

	if err := sch.Validate(normalized); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			collectSchemaErrors(verr, result)
		} else {
			result.AddError("", err.Error())
		}
	}
	return result
}

// collectSchemaErrors flattens the leaf causes of a validation error.
func collectSchemaErrors(err *jsonschema.ValidationError, result *SchemaValidationResult) {
	if len(err.Causes) == 0 {
		result.AddError(fieldFromPointer(err.InstanceLocation), err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}

// fieldFromPointer converts a JSON Pointer to dot notation.
func fieldFromPointer(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	path = strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(path, "/", ".")
}
