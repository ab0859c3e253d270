package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/scenariocast/internal/harness"
)

// ValidationResult is the payload of a successful validate.
type ValidationResult struct {
	Valid     bool     `json:"valid"`
	Cases     int      `json:"cases"`
	Scenarios int      `json:"scenarios"`
	Names     []string `json:"descriptions"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Check a fixture configuration",
		Long: `Validate builds every case fixture in the configuration: variables,
converters, rules, pairs and exemptions, and resolves the outcome of every
scenario. It reports the first configuration or rule format error with its
code, key and case.`,
		Args:          exactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // We handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	fixtures, err := loadFixtures(path, logger)
	if err != nil {
		return formatter.Fail(ErrCodeIO, "validation failed", err)
	}

	// Rule gaps and ambiguous rules only surface when outcomes are resolved.
	params, err := harness.NewGenerator(harness.WithLogger(logger)).Generate(fixtures)
	if err != nil {
		return formatter.Fail(ErrCodeFixture, "validation failed", err)
	}

	result := ValidationResult{Valid: true, Cases: len(fixtures), Scenarios: len(params), Names: make([]string, len(fixtures))}
	for i, f := range fixtures {
		result.Names[i] = f.Description()
		formatter.VerboseLog("case %d %q: %d scenario(s)", f.Index(), f.Description(), len(f.Scenarios()))
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ %d case(s) valid, %d scenario(s)\n", result.Cases, result.Scenarios)
	return nil
}
