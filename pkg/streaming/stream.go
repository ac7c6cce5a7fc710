package streaming

import (
	"iter"
	"sync"

	"github.com/getmockd/mockd-openai/pkg/schema"
)

// EventStream produces assistant stream events on demand.
type EventStream interface {
	// Next returns the next event, or false once the stream is exhausted.
	Next() (schema.StreamEvent, bool)
}

// Step performs one state mutation and returns the event describing it.
type Step func() schema.StreamEvent

// StepStream is an EventStream that runs a fixed list of steps in order.
type StepStream struct {
	mu    sync.Mutex
	steps []Step
	pos   int
}

// NewStepStream creates a stream over steps.
func NewStepStream(steps ...Step) *StepStream {
	return &StepStream{steps: steps}
}

// Next runs the next step.
func (s *StepStream) Next() (schema.StreamEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.steps) {
		return schema.StreamEvent{}, false
	}
	step := s.steps[s.pos]
	s.pos++
	return step(), true
}

// Remaining returns the number of steps not yet run.
func (s *StepStream) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps) - s.pos
}

// All adapts an EventStream to a range-over-func iterator. Breaking out of
// the loop stops pulling; steps already run stay applied.
func All(stream EventStream) iter.Seq[schema.StreamEvent] {
	return func(yield func(schema.StreamEvent) bool) {
		for {
			ev, ok := stream.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}

// Collect drains stream into a slice.
func Collect(stream EventStream) []schema.StreamEvent {
	var events []schema.StreamEvent
	for ev := range All(stream) {
		events = append(events, ev)
	}
	return events
}
