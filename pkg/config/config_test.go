package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockd-openai/pkg/engine"
	"github.com/getmockd/mockd-openai/pkg/logging"
	"github.com/getmockd/mockd-openai/pkg/schema"
)

const fullYAML = `
baseURL: http://localhost:4300/v1
log: {level: debug, format: json}
threads: {latency: 50ms}
messages: {latency: 0.25, validateThreadExists: true}
runs:
  failures: 1
  validateThreadExists: true
  validateAssistantExists: true
  sequence:
    create: [{status: queued}]
    retrieve:
      - status: requires_action
        required_action:
          type: submit_tool_outputs
          submit_tool_outputs:
            tool_calls:
              - id: call_1
                type: function
                function: {name: get_weather, arguments: '{"city":"Oslo"}'}
      - status: failed
        failed_at: 1700000000
        last_error: {code: rate_limit_exceeded, message: slow down}
assistants: {}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile_YAML(t *testing.T) {
	s, err := LoadFromFile(writeFile(t, "scenario.yaml", fullYAML))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4300/v1", s.BaseURL)
	assert.Equal(t, 50*time.Millisecond, s.Threads.Latency.Std())
	assert.Equal(t, 250*time.Millisecond, s.Messages.Latency.Std())
	assert.True(t, s.Messages.ValidateThreadExists)
	assert.Equal(t, 1, s.Runs.Failures)
	assert.True(t, s.Runs.ValidateAssistantExists)

	require.Len(t, s.Runs.Sequence.Create, 1)
	assert.Equal(t, schema.RunStatusQueued, *s.Runs.Sequence.Create[0].Status)
	require.Len(t, s.Runs.Sequence.Retrieve, 2)
	ra := s.Runs.Sequence.Retrieve[0].RequiredAction
	require.NotNil(t, ra)
	assert.Equal(t, "get_weather", ra.SubmitToolOutputs.ToolCalls[0].Function.Name)
	assert.Equal(t, `{"city":"Oslo"}`, ra.SubmitToolOutputs.ToolCalls[0].Function.Arguments)
	failed := s.Runs.Sequence.Retrieve[1]
	assert.Equal(t, int64(1700000000), *failed.FailedAt)
	assert.Equal(t, schema.ErrorCodeRateLimitExceeded, failed.LastError.Code)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := writeFile(t, "scenario.json", `{
		"threads": {"failures": 2, "latency": "1s"},
		"runs": {"sequence": {"retrieve": [{"status": "completed"}]}}
	}`)

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Threads.Failures)
	assert.Equal(t, time.Second, s.Threads.Latency.Std())
	assert.Equal(t, schema.RunStatusCompleted, *s.Runs.Sequence.Retrieve[0].Status)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = LoadFromFile(writeFile(t, "empty.yaml", "  \n"))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = LoadFromFile(writeFile(t, "bad.json", "{ invalid json }"))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = LoadFromFile(writeFile(t, "bad.yaml", "threads: [unclosed"))
	assert.ErrorIs(t, err, ErrInvalidYAML)

	_, err = LoadFromFile(t.TempDir())
	assert.Error(t, err)
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		path string
	}{
		{"unknown top-level key", "chats: {}", ""},
		{"negative failures", "threads: {failures: -1}", "threads.failures"},
		{"bad latency", "threads: {latency: soon}", "threads.latency"},
		{"thread validation on threads", "threads: {validateThreadExists: true}", "threads"},
		{"sequence outside runs", "messages: {sequence: {}}", "messages"},
		{"unknown status", "runs: {sequence: {create: [{status: done}]}}", "runs.sequence.create.0.status"},
		{"bad log level", "log: {level: loud}", "log.level"},
		{"relative base URL", "baseURL: /v1", "baseURL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSchemaViolation)
			if tt.path != "" {
				assert.Contains(t, err.Error(), tt.path)
			}
		})
	}
}

func TestValidateDocument_Valid(t *testing.T) {
	result := ValidateDocument(map[string]any{
		"runs": map[string]any{"failures": 3, "latency": 1.5},
	})
	assert.True(t, result.IsValid(), result.Error())
	assert.Empty(t, result.Error())
}

func TestScenario_EngineConfig(t *testing.T) {
	s, err := ParseYAML([]byte(fullYAML))
	require.NoError(t, err)

	cfg := s.EngineConfig()
	assert.Equal(t, "http://localhost:4300/v1", cfg.BaseURL)
	assert.Equal(t, 50*time.Millisecond, cfg.Threads.Latency)
	assert.True(t, cfg.Messages.ValidateThreadExists)
	assert.Equal(t, 1, cfg.Runs.Failures)
	assert.Len(t, cfg.Runs.Sequence.Retrieve, 2)

	m, err := engine.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/v1", m.BasePath())
}

func TestScenario_LoggingConfig(t *testing.T) {
	s, err := ParseYAML([]byte(fullYAML))
	require.NoError(t, err)

	lc := s.LoggingConfig()
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.Equal(t, logging.FormatJSON, lc.Format)

	lc = Default().LoggingConfig()
	assert.Equal(t, logging.LevelInfo, lc.Level)
	assert.Equal(t, logging.FormatText, lc.Format)
}

func TestToYAML_RoundTrip(t *testing.T) {
	s, err := ParseYAML([]byte(fullYAML))
	require.NoError(t, err)

	data, err := ToYAML(s)
	require.NoError(t, err)
	again, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, s, again)

	data, err = ToJSON(s)
	require.NoError(t, err)
	again, err = ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestDuration_Forms(t *testing.T) {
	s, err := ParseJSON([]byte(`{"threads": {"latency": 2}}`))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, s.Threads.Latency.Std())
	assert.Equal(t, "2s", s.Threads.Latency.String())
}
