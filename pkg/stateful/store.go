package stateful

import (
	"github.com/getmockd/mockd-openai/pkg/schema"
)

// Collection names.
const (
	ResourceAssistants = "assistants"
	ResourceThreads    = "threads"
	ResourceMessages   = "messages"
	ResourceRuns       = "runs"
)

// StateStore is the container for all mocked objects.
//
// Share one StateStore between endpoint mocks to make cross-resource checks
// (thread exists, assistant exists) meaningful.
type StateStore struct {
	Assistants *Collection[schema.Assistant]
	Threads    *Collection[schema.Thread]
	Messages   *Collection[schema.Message]
	Runs       *Collection[schema.Run]
}

// NewStateStore creates an empty StateStore.
func NewStateStore() *StateStore {
	return &StateStore{
		Assistants: NewCollection[schema.Assistant](ResourceAssistants),
		Threads:    NewCollection[schema.Thread](ResourceThreads),
		Messages:   NewCollection[schema.Message](ResourceMessages),
		Runs:       NewCollection[schema.Run](ResourceRuns),
	}
}

// ThreadExists reports whether a thread with the given id is stored.
func (s *StateStore) ThreadExists(threadID string) bool {
	_, ok := s.Threads.Get(threadID)
	return ok
}

// Reset removes every object from every collection.
func (s *StateStore) Reset() *ResetResponse {
	counts := map[string]int{
		ResourceAssistants: s.Assistants.Reset(),
		ResourceThreads:    s.Threads.Reset(),
		ResourceMessages:   s.Messages.Reset(),
		ResourceRuns:       s.Runs.Reset(),
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return &ResetResponse{
		Reset:   true,
		Cleared: counts,
		Total:   total,
	}
}

// Overview returns item counts for every collection.
func (s *StateStore) Overview() *StateOverview {
	o := &StateOverview{
		Counts: map[string]int{
			ResourceAssistants: s.Assistants.Len(),
			ResourceThreads:    s.Threads.Len(),
			ResourceMessages:   s.Messages.Len(),
			ResourceRuns:       s.Runs.Len(),
		},
	}
	for _, n := range o.Counts {
		o.TotalItems += n
	}
	return o
}

// StateOverview summarizes the contents of a StateStore.
type StateOverview struct {
	// Counts maps collection name to item count
	Counts map[string]int `json:"counts"`
	// TotalItems is the total across all collections
	TotalItems int `json:"totalItems"`
}

// ResetResponse is returned after a state reset.
type ResetResponse struct {
	Reset   bool           `json:"reset"`
	Cleared map[string]int `json:"cleared"`
	Total   int            `json:"total"`
}
