package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockd-openai/pkg/config"
	"github.com/getmockd/mockd-openai/pkg/engine"
	"github.com/getmockd/mockd-openai/pkg/logging"
)

const (
	// DefaultPort is the port serve listens on when --port is not given.
	DefaultPort = 4300
	// DefaultHost is the interface serve binds by default.
	DefaultHost = "127.0.0.1"

	// shutdownTimeout is the maximum time to wait for graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

type serveFlags struct {
	configFile string
	host       string
	port       int
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mock server (foreground)",
	Long: `Start the mock Assistants API on a local listener.

The API root is served under the path of the scenario's baseURL
(default /v1), so clients point their base URL at http://host:port/v1.
State lives in memory and is lost on exit.`,
	Example: `  # Start with defaults on 127.0.0.1:4300
  mockd-openai serve

  # Start with a scenario on a custom port
  mockd-openai serve --config scenario.yaml --port 8080

  # Verbose per-request logging
  mockd-openai serve --log-level debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, &serveFlagVals, cmd.OutOrStdout())
	},
}

// loadScenario reads the scenario file, or returns the default scenario
// when path is empty.
func loadScenario(path string) (*config.Scenario, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

// newLogger builds the process logger; a non-empty --log-level wins over
// the scenario's level.
func newLogger(s *config.Scenario, level string) *slog.Logger {
	cfg := s.LoggingConfig()
	if level != "" {
		cfg.Level = logging.ParseLevel(level)
	}
	return logging.New(cfg)
}

// startServer builds the mock described by f and starts serving it.
func startServer(f *serveFlags) (*engine.Server, error) {
	scenario, err := loadScenario(f.configFile)
	if err != nil {
		return nil, err
	}
	log := newLogger(scenario, logLevel)

	mock, err := engine.New(scenario.EngineConfig(), engine.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	addr := net.JoinHostPort(f.host, strconv.Itoa(f.port))
	srv := engine.NewServer(mock, addr, engine.WithServerLogger(log))
	if err := srv.Start(); err != nil {
		return nil, err
	}
	return srv, nil
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func runServe(ctx context.Context, f *serveFlags, out io.Writer) error {
	srv, err := startServer(f)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "mockd-openai listening on %s\n", srv.URL())
	if f.configFile != "" {
		fmt.Fprintf(out, "Scenario: %s\n", f.configFile)
	}
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	<-ctx.Done()
	fmt.Fprintln(out, "\nShutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func init() {
	f := &serveFlagVals
	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to a scenario file (YAML or JSON)")
	serveCmd.Flags().StringVar(&f.host, "host", DefaultHost, "Interface to bind")
	serveCmd.Flags().IntVarP(&f.port, "port", "p", DefaultPort, "HTTP server port (0 picks a free port)")
	rootCmd.AddCommand(serveCmd)
}
