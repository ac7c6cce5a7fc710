package schema

// Object type discriminators.
const (
	ObjectAssistant        = "assistant"
	ObjectAssistantDeleted = "assistant.deleted"
	ObjectThread           = "thread"
	ObjectThreadDeleted    = "thread.deleted"
	ObjectMessage          = "thread.message"
	ObjectRun              = "thread.run"
	ObjectList             = "list"
)

// DefaultModel is used for runs when neither the request, a scripted partial,
// nor an assistant supplies one.
const DefaultModel = "gpt-3.5-turbo"

// Metadata is an open key-value map attached to most objects.
type Metadata = map[string]any

// Tool types.
const (
	ToolCodeInterpreter = "code_interpreter"
	ToolRetrieval       = "retrieval"
	ToolFileSearch      = "file_search"
	ToolFunction        = "function"
)

// Tool is a tool spec enabled on an assistant or run.
type Tool struct {
	Type     string              `json:"type" yaml:"type"`
	Function *FunctionDefinition `json:"function,omitempty" yaml:"function,omitempty"`
}

// FunctionDefinition describes a function tool.
type FunctionDefinition struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Assistant is a named model configuration referenced by runs.
type Assistant struct {
	ID           string   `json:"id"`
	Object       string   `json:"object"`
	CreatedAt    int64    `json:"created_at"`
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Model        string   `json:"model"`
	Instructions *string  `json:"instructions"`
	Tools        []Tool   `json:"tools"`
	FileIDs      []string `json:"file_ids"`
	Metadata     Metadata `json:"metadata"`
}

// GetID implements stateful.Entity.
func (a Assistant) GetID() string { return a.ID }

// ParentID implements stateful.Entity. Assistants are top-level.
func (a Assistant) ParentID() string { return "" }

// AssistantDeleted is returned by the assistant delete endpoint.
type AssistantDeleted struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// Thread is a conversation container owning messages and runs.
type Thread struct {
	ID        string   `json:"id"`
	Object    string   `json:"object"`
	CreatedAt int64    `json:"created_at"`
	Metadata  Metadata `json:"metadata"`
}

// GetID implements stateful.Entity.
func (t Thread) GetID() string { return t.ID }

// ParentID implements stateful.Entity. Threads are top-level.
func (t Thread) ParentID() string { return "" }

// ThreadDeleted is returned by the thread delete endpoint.
type ThreadDeleted struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MessageStatusCompleted is the only status messages take in the mock.
const MessageStatusCompleted = "completed"

// Message is a single entry in a thread.
type Message struct {
	ID          string         `json:"id"`
	Object      string         `json:"object"`
	CreatedAt   int64          `json:"created_at"`
	ThreadID    string         `json:"thread_id"`
	Role        string         `json:"role"`
	Status      string         `json:"status"`
	Content     []ContentBlock `json:"content"`
	FileIDs     []string       `json:"file_ids"`
	AssistantID *string        `json:"assistant_id"`
	RunID       *string        `json:"run_id"`
	Metadata    Metadata       `json:"metadata"`
}

// GetID implements stateful.Entity.
func (m Message) GetID() string { return m.ID }

// ParentID implements stateful.Entity.
func (m Message) ParentID() string { return m.ThreadID }

// ContentBlock is one block of message content. Only text blocks are produced.
type ContentBlock struct {
	Type string `json:"type"`
	Text Text   `json:"text"`
}

// Text is the payload of a text content block.
type Text struct {
	Value       string `json:"value"`
	Annotations []any  `json:"annotations"`
}

// RunStatus is the lifecycle state of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusExpired        RunStatus = "expired"
)

// Run is one invocation of an assistant against a thread.
type Run struct {
	ID             string          `json:"id"`
	Object         string          `json:"object"`
	CreatedAt      int64           `json:"created_at"`
	ThreadID       string          `json:"thread_id"`
	AssistantID    string          `json:"assistant_id"`
	Status         RunStatus       `json:"status"`
	RequiredAction *RequiredAction `json:"required_action"`
	LastError      *LastError      `json:"last_error"`
	ExpiresAt      *int64          `json:"expires_at"`
	StartedAt      *int64          `json:"started_at"`
	CancelledAt    *int64          `json:"cancelled_at"`
	FailedAt       *int64          `json:"failed_at"`
	CompletedAt    *int64          `json:"completed_at"`
	Model          string          `json:"model"`
	Instructions   string          `json:"instructions"`
	Tools          []Tool          `json:"tools"`
	FileIDs        []string        `json:"file_ids"`
	Usage          *Usage          `json:"usage"`
	Metadata       Metadata        `json:"metadata"`
}

// GetID implements stateful.Entity.
func (r Run) GetID() string { return r.ID }

// ParentID implements stateful.Entity.
func (r Run) ParentID() string { return r.ThreadID }

// RequiredAction is the tool-call request a run raises when it needs outputs.
type RequiredAction struct {
	Type              string            `json:"type" yaml:"type"`
	SubmitToolOutputs SubmitToolOutputs `json:"submit_tool_outputs" yaml:"submit_tool_outputs"`
}

// SubmitToolOutputs lists the tool calls awaiting outputs.
type SubmitToolOutputs struct {
	ToolCalls []ToolCall `json:"tool_calls" yaml:"tool_calls"`
}

// ToolCall is a single function call requested by a run.
type ToolCall struct {
	ID       string       `json:"id" yaml:"id"`
	Type     string       `json:"type" yaml:"type"`
	Function FunctionCall `json:"function" yaml:"function"`
}

// FunctionCall carries the function name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name" yaml:"name"`
	Arguments string `json:"arguments" yaml:"arguments"`
}

// LastError codes.
const (
	ErrorCodeServerError       = "server_error"
	ErrorCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrorCodeInvalidPrompt     = "invalid_prompt"
)

// LastError is the error recorded on a failed run.
type LastError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Usage holds token counters. The mock always reports zeros.
type Usage struct {
	CompletionTokens int `json:"completion_tokens"`
	PromptTokens     int `json:"prompt_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
