// Package builders turns request payloads into fully populated API objects.
//
// Builders are pure apart from id and timestamp generation: they never touch
// a store. Missing optional fields get documented defaults (null metadata,
// empty tool and file id lists, the default model).
package builders

import (
	"time"

	"github.com/getmockd/mockd-openai/internal/id"
	"github.com/getmockd/mockd-openai/pkg/schema"
)

// Now returns the creation timestamp in unix seconds. Tests may replace it.
var Now = func() int64 {
	return time.Now().Unix()
}

// Assistant builds an assistant from create params.
func Assistant(params schema.AssistantCreateParams) schema.Assistant {
	return schema.Assistant{
		ID:           id.Assistant(),
		Object:       schema.ObjectAssistant,
		CreatedAt:    Now(),
		Name:         params.Name,
		Description:  params.Description,
		Model:        params.Model,
		Instructions: params.Instructions,
		Tools:        nonNil(params.Tools),
		FileIDs:      nonNil(params.FileIDs),
		Metadata:     params.Metadata,
	}
}

// Thread builds a thread and the initial messages the params carry.
func Thread(params schema.ThreadCreateParams) (schema.Thread, []schema.Message) {
	thread := schema.Thread{
		ID:        id.Thread(),
		Object:    schema.ObjectThread,
		CreatedAt: Now(),
		Metadata:  params.Metadata,
	}

	messages := make([]schema.Message, 0, len(params.Messages))
	for _, m := range params.Messages {
		messages = append(messages, Message(thread.ID, m))
	}
	return thread, messages
}

// Message builds a completed message in the given thread.
func Message(threadID string, params schema.MessageCreateParams) schema.Message {
	role := params.Role
	if role == "" {
		role = schema.RoleUser
	}
	return schema.Message{
		ID:        id.Message(),
		Object:    schema.ObjectMessage,
		CreatedAt: Now(),
		ThreadID:  threadID,
		Role:      role,
		Status:    schema.MessageStatusCompleted,
		Content:   TextContent(string(params.Content)),
		FileIDs:   nonNil(params.FileIDs),
		Metadata:  params.Metadata,
	}
}

// AssistantMessage builds the reply a run posts to its thread.
func AssistantMessage(run schema.Run, text string) schema.Message {
	assistantID := run.AssistantID
	runID := run.ID
	return schema.Message{
		ID:          id.Message(),
		Object:      schema.ObjectMessage,
		CreatedAt:   Now(),
		ThreadID:    run.ThreadID,
		Role:        schema.RoleAssistant,
		Status:      schema.MessageStatusCompleted,
		Content:     TextContent(text),
		FileIDs:     []string{},
		AssistantID: &assistantID,
		RunID:       &runID,
	}
}

// TextContent wraps text in a single text content block.
func TextContent(text string) []schema.ContentBlock {
	return []schema.ContentBlock{{
		Type: "text",
		Text: schema.Text{Value: text, Annotations: []any{}},
	}}
}

// Run builds a run in the given thread. Request overrides are applied over the
// defaults, then extra is applied over both; extra may be nil.
func Run(threadID string, params schema.RunCreateParams, extra *schema.PartialRun) schema.Run {
	run := schema.Run{
		ID:          id.Run(),
		Object:      schema.ObjectRun,
		CreatedAt:   Now(),
		ThreadID:    threadID,
		AssistantID: params.AssistantID,
		Status:      schema.RunStatusQueued,
		Model:       schema.DefaultModel,
		Tools:       []schema.Tool{},
		FileIDs:     []string{},
		Usage:       &schema.Usage{},
		Metadata:    params.Metadata,
	}

	params.Overrides().ApplyTo(&run)
	extra.ApplyTo(&run)
	return run
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
