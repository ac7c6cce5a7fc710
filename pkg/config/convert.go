package config

import (
	"os"

	"github.com/getmockd/mockd-openai/pkg/endpoints"
	"github.com/getmockd/mockd-openai/pkg/engine"
	"github.com/getmockd/mockd-openai/pkg/logging"
)

// Default returns an empty scenario: default base URL, no side effects.
func Default() *Scenario {
	return &Scenario{
		BaseURL: engine.DefaultBaseURL,
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
	}
}

// EndpointConfig converts a resource section to an endpoint configuration.
func (r ResourceConfig) EndpointConfig() endpoints.Config {
	return endpoints.Config{
		Latency:                 r.Latency.Std(),
		Failures:                r.Failures,
		ValidateThreadExists:    r.ValidateThreadExists,
		ValidateAssistantExists: r.ValidateAssistantExists,
		Sequence:                r.Sequence,
	}
}

// EngineConfig converts the scenario to an engine configuration.
func (s *Scenario) EngineConfig() engine.Config {
	return engine.Config{
		BaseURL:    s.BaseURL,
		Assistants: s.Assistants.EndpointConfig(),
		Threads:    s.Threads.EndpointConfig(),
		Messages:   s.Messages.EndpointConfig(),
		Runs:       s.Runs.EndpointConfig(),
	}
}

// LoggingConfig converts the log section to a logging configuration
// writing to stderr.
func (s *Scenario) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Output = os.Stderr
	if s.Log.Level != "" {
		cfg.Level = logging.ParseLevel(s.Log.Level)
	}
	if s.Log.Format != "" {
		cfg.Format = logging.ParseFormat(s.Log.Format)
	}
	return cfg
}
