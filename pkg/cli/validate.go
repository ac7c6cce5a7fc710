package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockd-openai/pkg/cli/internal/output"
	"github.com/getmockd/mockd-openai/pkg/config"
	"github.com/getmockd/mockd-openai/pkg/engine"
)

var validatePrint bool

// ValidateOutput is the JSON result of the validate command.
type ValidateOutput struct {
	File   string `json:"file"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Routes int    `json:"routes,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a scenario file without starting the server",
	Long: `Validate a scenario file without starting the server.

This command checks:
  - YAML or JSON syntax (by file extension)
  - Schema validation (known keys, status values, non-negative failures)
  - That the resulting mock can be constructed (base URL, per-resource config)`,
	Example: `  # Validate a scenario
  mockd-openai validate scenario.yaml

  # Print the normalized scenario
  mockd-openai validate scenario.json --print`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd, args[0])
	},
}

func runValidate(cmd *cobra.Command, path string) error {
	w := cmd.OutOrStdout()
	result := ValidateOutput{File: path}

	scenario, err := config.LoadFromFile(path)
	if err == nil {
		var m *engine.OpenAIMock
		m, err = engine.New(scenario.EngineConfig())
		if err == nil {
			result.Routes = len(m.Routes())
		}
	}
	if err != nil {
		result.Error = err.Error()
		if jsonOutput {
			_ = output.JSON(w, result)
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	result.Valid = true

	if jsonOutput {
		return output.JSON(w, result)
	}

	fmt.Fprintf(w, "%s is valid (%d routes)\n", path, result.Routes)
	if validatePrint {
		data, err := config.ToYAML(scenario)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s", data)
	}
	return nil
}

func init() {
	validateCmd.Flags().BoolVar(&validatePrint, "print", false, "Print the normalized scenario as YAML")
	rootCmd.AddCommand(validateCmd)
}
