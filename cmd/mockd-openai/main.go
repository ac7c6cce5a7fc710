// mockd-openai CLI - serves a stateful mock of the OpenAI Assistants API
package main

import "github.com/getmockd/mockd-openai/pkg/cli"

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	cli.Execute()
}
