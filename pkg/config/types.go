package config

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockd-openai/pkg/schema"
)

// Scenario is the top-level configuration file.
type Scenario struct {
	BaseURL    string         `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
	Log        LogConfig      `json:"log,omitzero" yaml:"log,omitempty"`
	Assistants ResourceConfig `json:"assistants,omitzero" yaml:"assistants,omitempty"`
	Threads    ResourceConfig `json:"threads,omitzero" yaml:"threads,omitempty"`
	Messages   ResourceConfig `json:"messages,omitzero" yaml:"messages,omitempty"`
	Runs       ResourceConfig `json:"runs,omitzero" yaml:"runs,omitempty"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ResourceConfig configures one resource mock.
type ResourceConfig struct {
	Latency                 Duration           `json:"latency,omitempty" yaml:"latency,omitempty"`
	Failures                int                `json:"failures,omitempty" yaml:"failures,omitempty"`
	ValidateThreadExists    bool               `json:"validateThreadExists,omitempty" yaml:"validateThreadExists,omitempty"`
	ValidateAssistantExists bool               `json:"validateAssistantExists,omitempty" yaml:"validateAssistantExists,omitempty"`
	Sequence                schema.RunSequence `json:"sequence,omitzero" yaml:"sequence,omitempty"`
}

// Duration is a time.Duration written as a Go duration string ("250ms") or
// a number of seconds (0.25).
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return d.parse(s)
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("duration must be a string or a number of seconds: %s", data)
	}
	return d.setSeconds(secs)
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	if node.Tag == "!!int" || node.Tag == "!!float" {
		secs, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		return d.setSeconds(secs)
	}
	return d.parse(node.Value)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if v < 0 {
		return fmt.Errorf("duration must be >= 0, got %s", s)
	}
	*d = Duration(v)
	return nil
}

func (d *Duration) setSeconds(secs float64) error {
	if secs < 0 {
		return fmt.Errorf("duration must be >= 0, got %v", secs)
	}
	*d = Duration(secs * float64(time.Second))
	return nil
}
