package streaming

import (
	"github.com/getmockd/mockd-openai/pkg/builders"
	"github.com/getmockd/mockd-openai/pkg/schema"
	"github.com/getmockd/mockd-openai/pkg/stateful"
)

// AssistantReply is the text of the message a streamed run posts.
const AssistantReply = "Hello! How can I help?"

// StreamModel is the model a streamed run reports unless scripted otherwise.
const StreamModel = "gpt-4-turbo"

// RunDefaults returns the fields a streamed run takes over the request when
// no scripted partial sets them: StreamModel and a code_interpreter tool.
func RunDefaults() *schema.PartialRun {
	return &schema.PartialRun{
		Model: schema.Ptr(StreamModel),
		Tools: []schema.Tool{{Type: schema.ToolCodeInterpreter}},
	}
}

// CreateRunEventStream replays the lifecycle of a freshly created run:
// created, in progress, assistant message created, completed.
func CreateRunEventStream(run schema.Run, store *stateful.StateStore) *StepStream {
	return NewStepStream(
		func() schema.StreamEvent {
			store.Runs.Put(run)
			return schema.StreamEvent{Event: schema.EventRunCreated, Data: run}
		},
		func() schema.StreamEvent {
			run.Status = schema.RunStatusInProgress
			store.Runs.Put(run)
			return schema.StreamEvent{Event: schema.EventRunInProgress, Data: run}
		},
		func() schema.StreamEvent {
			msg := builders.AssistantMessage(run, AssistantReply)
			store.Messages.Put(msg)
			return schema.StreamEvent{Event: schema.EventMessageCreated, Data: msg}
		},
		func() schema.StreamEvent {
			run.Status = schema.RunStatusCompleted
			store.Runs.Put(run)
			return schema.StreamEvent{Event: schema.EventRunCompleted, Data: run}
		},
	)
}
