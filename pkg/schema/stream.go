package schema

// Assistant stream event names.
const (
	EventThreadCreated     = "thread.created"
	EventRunCreated        = "thread.run.created"
	EventRunQueued         = "thread.run.queued"
	EventRunInProgress     = "thread.run.in_progress"
	EventRunRequiresAction = "thread.run.requires_action"
	EventRunCompleted      = "thread.run.completed"
	EventRunFailed         = "thread.run.failed"
	EventRunCancelled      = "thread.run.cancelled"
	EventMessageCreated    = "thread.message.created"
	EventMessageInProgress = "thread.message.in_progress"
	EventMessageCompleted  = "thread.message.completed"
	EventDone              = "done"
	StreamDoneData         = "[DONE]"
)

// StreamEvent is one event of an assistant stream: the event name paired with
// a snapshot of the affected object.
type StreamEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}
