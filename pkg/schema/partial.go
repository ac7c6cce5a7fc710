package schema

// PartialRun is a sparse set of run fields. Nil fields are left untouched
// when the partial is applied.
type PartialRun struct {
	Status         *RunStatus      `json:"status,omitempty" yaml:"status,omitempty"`
	RequiredAction *RequiredAction `json:"required_action,omitempty" yaml:"required_action,omitempty"`
	LastError      *LastError      `json:"last_error,omitempty" yaml:"last_error,omitempty"`
	ExpiresAt      *int64          `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	StartedAt      *int64          `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	CancelledAt    *int64          `json:"cancelled_at,omitempty" yaml:"cancelled_at,omitempty"`
	FailedAt       *int64          `json:"failed_at,omitempty" yaml:"failed_at,omitempty"`
	CompletedAt    *int64          `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Model          *string         `json:"model,omitempty" yaml:"model,omitempty"`
	Instructions   *string         `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Tools          []Tool          `json:"tools,omitempty" yaml:"tools,omitempty"`
	FileIDs        []string        `json:"file_ids,omitempty" yaml:"file_ids,omitempty"`
}

// RunSequence scripts run state per endpoint. The Nth successful call of an
// endpoint applies the Nth entry; calls past the end apply nothing.
type RunSequence struct {
	Create   []PartialRun `json:"create,omitempty" yaml:"create,omitempty"`
	Retrieve []PartialRun `json:"retrieve,omitempty" yaml:"retrieve,omitempty"`
}

// Sequence methods.
const (
	MethodCreate   = "create"
	MethodRetrieve = "retrieve"
)

// Next returns the scripted partial for the given method and zero-based index,
// or nil when the index is out of range.
func (s RunSequence) Next(method string, index int) *PartialRun {
	var entries []PartialRun
	switch method {
	case MethodCreate:
		entries = s.Create
	case MethodRetrieve:
		entries = s.Retrieve
	}
	if index < 0 || index >= len(entries) {
		return nil
	}
	p := entries[index]
	return &p
}

// IsEmpty reports whether no entries are scripted.
func (s RunSequence) IsEmpty() bool {
	return len(s.Create) == 0 && len(s.Retrieve) == 0
}

// FillFrom returns a copy of p where every unset field takes the value from
// other. Either side may be nil.
func (p *PartialRun) FillFrom(other *PartialRun) *PartialRun {
	out := &PartialRun{}
	if p != nil {
		*out = *p
	}
	if other == nil {
		return out
	}
	if out.Status == nil {
		out.Status = other.Status
	}
	if out.RequiredAction == nil {
		out.RequiredAction = other.RequiredAction
	}
	if out.LastError == nil {
		out.LastError = other.LastError
	}
	if out.ExpiresAt == nil {
		out.ExpiresAt = other.ExpiresAt
	}
	if out.StartedAt == nil {
		out.StartedAt = other.StartedAt
	}
	if out.CancelledAt == nil {
		out.CancelledAt = other.CancelledAt
	}
	if out.FailedAt == nil {
		out.FailedAt = other.FailedAt
	}
	if out.CompletedAt == nil {
		out.CompletedAt = other.CompletedAt
	}
	if out.Model == nil {
		out.Model = other.Model
	}
	if out.Instructions == nil {
		out.Instructions = other.Instructions
	}
	if out.Tools == nil {
		out.Tools = other.Tools
	}
	if out.FileIDs == nil {
		out.FileIDs = other.FileIDs
	}
	return out
}

// ApplyTo merges the set fields of p onto run. Scripted fields win; unset
// fields keep the run's current values.
func (p *PartialRun) ApplyTo(run *Run) {
	if p == nil || run == nil {
		return
	}
	if p.Status != nil {
		run.Status = *p.Status
	}
	if p.RequiredAction != nil {
		ra := *p.RequiredAction
		run.RequiredAction = &ra
	}
	if p.LastError != nil {
		le := *p.LastError
		run.LastError = &le
	}
	if p.ExpiresAt != nil {
		run.ExpiresAt = p.ExpiresAt
	}
	if p.StartedAt != nil {
		run.StartedAt = p.StartedAt
	}
	if p.CancelledAt != nil {
		run.CancelledAt = p.CancelledAt
	}
	if p.FailedAt != nil {
		run.FailedAt = p.FailedAt
	}
	if p.CompletedAt != nil {
		run.CompletedAt = p.CompletedAt
	}
	if p.Model != nil {
		run.Model = *p.Model
	}
	if p.Instructions != nil {
		run.Instructions = *p.Instructions
	}
	if p.Tools != nil {
		run.Tools = append([]Tool(nil), p.Tools...)
	}
	if p.FileIDs != nil {
		run.FileIDs = append([]string(nil), p.FileIDs...)
	}
}

// AssistantDefaults returns the run fields an assistant supplies as defaults.
func AssistantDefaults(a Assistant) *PartialRun {
	instructions := ""
	if a.Instructions != nil {
		instructions = *a.Instructions
	}
	model := a.Model
	tools := a.Tools
	if tools == nil {
		tools = []Tool{}
	}
	fileIDs := a.FileIDs
	if fileIDs == nil {
		fileIDs = []string{}
	}
	return &PartialRun{
		Model:        &model,
		Instructions: &instructions,
		Tools:        tools,
		FileIDs:      fileIDs,
	}
}

// Ptr returns a pointer to v. Handy for building partials in tests and config.
func Ptr[T any](v T) *T {
	return &v
}
