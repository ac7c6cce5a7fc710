package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRootCommandForTest(t *testing.T, args ...string) (string, error) {
	t.Helper()
	jsonOutput = false
	logLevel = ""
	validatePrint = false
	for _, name := range []string{"json", "log-level"} {
		if f := rootCmd.PersistentFlags().Lookup(name); f != nil {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	if f := validateCmd.Flags().Lookup("print"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersionCmd(t *testing.T) {
	out, err := runRootCommandForTest(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mockd-openai ")

	out, err = runRootCommandForTest(t, "version", "--json")
	require.NoError(t, err)
	var v VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.NotEmpty(t, v.Go)
	assert.NotEmpty(t, v.OS)
}

func TestValidateCmd_Valid(t *testing.T) {
	path := writeScenario(t, "scenario.yaml", `
runs:
  failures: 1
  sequence:
    retrieve: [{status: in_progress}, {status: completed}]
`)

	out, err := runRootCommandForTest(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (19 routes)")

	out, err = runRootCommandForTest(t, "validate", path, "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "status: completed")
}

func TestValidateCmd_JSON(t *testing.T) {
	path := writeScenario(t, "scenario.json", `{"threads": {"failures": -1}}`)

	out, err := runRootCommandForTest(t, "validate", path, "--json")
	require.Error(t, err)

	var res ValidateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "threads.failures")
}

func TestValidateCmd_Errors(t *testing.T) {
	_, err := runRootCommandForTest(t, "validate", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = runRootCommandForTest(t, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestNewLogger_FlagOverridesScenario(t *testing.T) {
	s, err := loadScenario("")
	require.NoError(t, err)

	log := newLogger(s, "debug")
	assert.True(t, log.Enabled(context.Background(), -4))

	log = newLogger(s, "")
	assert.False(t, log.Enabled(context.Background(), -4))
}

func TestStartServer(t *testing.T) {
	path := writeScenario(t, "scenario.yaml", "threads: {failures: 1}\n")
	srv, err := startServer(&serveFlags{configFile: path, host: "127.0.0.1", port: 0})
	require.NoError(t, err)
	defer func() { _ = srv.Stop(context.Background()) }()

	assert.True(t, strings.HasSuffix(srv.URL(), "/v1"))

	client := resty.New().SetBaseURL(srv.URL())
	resp, err := client.R().SetBody(map[string]any{}).Post("/threads")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode())

	resp, err = client.R().SetBody(map[string]any{}).Post("/threads")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode())
}

func TestStartServer_BadScenario(t *testing.T) {
	path := writeScenario(t, "scenario.yaml", "chats: {}\n")
	_, err := startServer(&serveFlags{configFile: path, host: "127.0.0.1", port: 0})
	require.Error(t, err)
}

// syncBuffer is a bytes.Buffer safe for the serve goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- runServe(ctx, &serveFlags{host: "127.0.0.1", port: 0}, out)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "listening on")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.Contains(t, out.String(), "Shutting down")
}
