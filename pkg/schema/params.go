package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Field is an optional request field that records whether the key was present
// in the decoded body. An explicit JSON null counts as present.
type Field[T any] struct {
	Value   T
	Present bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

// AssistantCreateParams is the body of POST /assistants.
type AssistantCreateParams struct {
	Model        string   `json:"model"`
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Instructions *string  `json:"instructions"`
	Tools        []Tool   `json:"tools"`
	FileIDs      []string `json:"file_ids"`
	Metadata     Metadata `json:"metadata"`
}

// AssistantUpdateParams is the body of POST /assistants/{id}.
type AssistantUpdateParams struct {
	Model        Field[string]   `json:"model"`
	Name         Field[*string]  `json:"name"`
	Description  Field[*string]  `json:"description"`
	Instructions Field[*string]  `json:"instructions"`
	Tools        Field[[]Tool]   `json:"tools"`
	FileIDs      Field[[]string] `json:"file_ids"`
	Metadata     Field[Metadata] `json:"metadata"`
}

// ThreadCreateParams is the body of POST /threads.
type ThreadCreateParams struct {
	Messages []MessageCreateParams `json:"messages"`
	Metadata Metadata              `json:"metadata"`
}

// ThreadUpdateParams is the body of POST /threads/{id}.
type ThreadUpdateParams struct {
	Metadata Field[Metadata] `json:"metadata"`
}

// MessageCreateParams is the body of POST /threads/{thread_id}/messages.
type MessageCreateParams struct {
	Role     string         `json:"role"`
	Content  MessageContent `json:"content"`
	FileIDs  []string       `json:"file_ids"`
	Metadata Metadata       `json:"metadata"`
}

// MessageUpdateParams is the body of POST /threads/{thread_id}/messages/{id}.
type MessageUpdateParams struct {
	Metadata Field[Metadata] `json:"metadata"`
}

// MessageContent accepts either a plain string or an array of content parts.
// Text parts are joined with newlines into a single value.
type MessageContent string

// UnmarshalJSON implements json.Unmarshaler.
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = MessageContent(s)
		return nil
	}

	var parts []struct {
		Type string          `json:"type"`
		Text json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("content must be a string or an array of content parts: %w", err)
	}

	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Type != "text" || len(p.Text) == 0 {
			continue
		}
		// Parts carry either "text": "..." or "text": {"value": "..."}.
		var s string
		if err := json.Unmarshal(p.Text, &s); err == nil {
			texts = append(texts, s)
			continue
		}
		var v struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(p.Text, &v); err != nil {
			return fmt.Errorf("invalid text content part: %w", err)
		}
		texts = append(texts, v.Value)
	}
	*c = MessageContent(strings.Join(texts, "\n"))
	return nil
}

// RunCreateParams is the body of POST /threads/{thread_id}/runs.
type RunCreateParams struct {
	AssistantID  string   `json:"assistant_id"`
	Model        *string  `json:"model"`
	Instructions *string  `json:"instructions"`
	Tools        []Tool   `json:"tools"`
	Metadata     Metadata `json:"metadata"`
	Stream       bool     `json:"stream"`
}

// Overrides returns the run fields the request sets explicitly.
func (p RunCreateParams) Overrides() *PartialRun {
	return &PartialRun{
		Model:        p.Model,
		Instructions: p.Instructions,
		Tools:        p.Tools,
	}
}

// RunUpdateParams is the body of POST /threads/{thread_id}/runs/{id}.
type RunUpdateParams struct {
	Metadata Field[Metadata] `json:"metadata"`
}

// ToolOutput is one submitted tool result.
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

// SubmitToolOutputsParams is the body of
// POST /threads/{thread_id}/runs/{id}/submit_tool_outputs.
type SubmitToolOutputsParams struct {
	ToolOutputs []ToolOutput `json:"tool_outputs"`
	Stream      bool         `json:"stream"`
}
