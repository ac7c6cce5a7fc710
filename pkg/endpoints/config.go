package endpoints

import (
	"time"

	"github.com/getmockd/mockd-openai/pkg/chaos"
	"github.com/getmockd/mockd-openai/pkg/schema"
)

// Config is the immutable configuration of one resource mock.
type Config struct {
	// Latency is slept before each call is handled.
	Latency time.Duration
	// Failures is the number of leading calls, per route, that return a 5xx.
	Failures int
	// ValidateThreadExists makes message and run routes answer 404 when the
	// thread in the path is not stored.
	ValidateThreadExists bool
	// ValidateAssistantExists makes run create answer 404 for an unknown
	// assistant, and defaults run fields from the assistant when it exists.
	ValidateAssistantExists bool
	// Sequence scripts run create and retrieve responses.
	Sequence schema.RunSequence
}

// SideEffects returns the per-route fault configuration.
func (c Config) SideEffects() chaos.SideEffects {
	return chaos.SideEffects{
		Latency:  c.Latency,
		Failures: c.Failures,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return c.SideEffects().Validate()
}
