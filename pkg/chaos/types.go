package chaos

import (
	"fmt"
	"net/http"
	"time"
)

// InjectedFailureCode is the error code carried by injected failure bodies.
const InjectedFailureCode = "injected_failure"

// SideEffects configures the faults applied to one route.
type SideEffects struct {
	// Latency is slept before every invocation (0 = none).
	Latency time.Duration `json:"latency,omitempty" yaml:"latency,omitempty"`
	// Failures is the number of leading invocations that fail.
	Failures int `json:"failures,omitempty" yaml:"failures,omitempty"`
	// FailureStatus is the status returned by failed invocations (default 500).
	FailureStatus int `json:"failureStatus,omitempty" yaml:"failureStatus,omitempty"`
}

// Validate checks if the SideEffects are valid.
func (s SideEffects) Validate() error {
	if s.Latency < 0 {
		return fmt.Errorf("latency must be >= 0, got %s", s.Latency)
	}
	if s.Failures < 0 {
		return fmt.Errorf("failures must be >= 0, got %d", s.Failures)
	}
	if s.FailureStatus != 0 && (s.FailureStatus < 500 || s.FailureStatus > 599) {
		return fmt.Errorf("failureStatus must be a 5xx code, got %d", s.FailureStatus)
	}
	return nil
}

// Status returns the configured failure status, defaulting to 500.
func (s SideEffects) Status() int {
	if s.FailureStatus == 0 {
		return http.StatusInternalServerError
	}
	return s.FailureStatus
}

// Invocation describes one call of a route.
type Invocation struct {
	// Call is the 1-based invocation number.
	Call int
	// Failures is the configured failure budget at the time of the call.
	Failures int
	// Injected reports whether this call is inside the failure budget.
	Injected bool
}

// SequenceIndex returns the zero-based index into a scripted sequence for
// this call: the number of earlier calls minus the failure budget. The value
// shifts if the failure budget changes between calls.
func (inv Invocation) SequenceIndex() int {
	return inv.Call - 1 - inv.Failures
}

// Stats tracks side-effect statistics for a route.
type Stats struct {
	TotalCalls       int64         `json:"totalCalls"`
	InjectedFailures int64         `json:"injectedFailures"`
	LatencyInjected  time.Duration `json:"latencyInjected"`
}
