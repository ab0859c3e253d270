package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/scenariocast/internal/harness"
	"github.com/roach88/scenariocast/internal/store"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	DBPath      string
	CasePattern string
}

// ScenarioOutput is one generated scenario as reported by the CLI.
type ScenarioOutput struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Case     int      `json:"case"`
	Tokens   []string `json:"tokens"`
	Outcome  string   `json:"outcome,omitempty"`
	Exempt   bool     `json:"exempt,omitempty"`
	Inferred bool     `json:"inferred,omitempty"`
}

// GenerateResult is the payload of a successful generate.
type GenerateResult struct {
	Source    string           `json:"source"`
	Cases     int              `json:"cases"`
	Scenarios []ScenarioOutput `json:"scenarios"`
	Outcomes  map[string]int   `json:"outcomes"`
	RunID     string           `json:"run_id,omitempty"`
	Digest    string           `json:"digest,omitempty"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <config>",
		Short: "Generate the scenarios of a fixture configuration",
		Long: `Generate expands every case in a .properties, .yaml or .cue fixture
configuration into its scenarios and prints each scenario with its expected
outcome. With --db the run is saved to a SQLite scenario catalog.`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "save the run to this catalog database")
	cmd.Flags().StringVar(&opts.CasePattern, "case", "", "only generate cases whose description or case id matches this glob")

	return cmd
}

func runGenerate(rootOpts *RootOptions, opts *GenerateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)
	logger := newLogger(cmd.ErrOrStderr(), rootOpts.Verbose)

	fixtures, err := loadFixtures(path, logger)
	if err != nil {
		return formatter.Fail(ErrCodeIO, "failed to load fixtures", err)
	}

	selected, err := harness.SelectFixtures(fixtures, opts.CasePattern)
	if err != nil {
		return formatter.Fail(ErrCodePattern, "invalid --case pattern", err)
	}
	formatter.VerboseLog("Selected %d of %d cases", len(selected), len(fixtures))

	params, err := harness.NewGenerator(harness.WithLogger(logger)).Generate(selected)
	if err != nil {
		return formatter.Fail(ErrCodeFixture, "failed to generate scenarios", err)
	}

	result := GenerateResult{
		Source:    path,
		Cases:     len(selected),
		Scenarios: make([]ScenarioOutput, len(params)),
		Outcomes:  harness.Summary(params),
	}
	for i, p := range params {
		result.Scenarios[i] = ScenarioOutput{
			ID:       p.ID,
			Name:     p.Name,
			Case:     p.CaseIndex,
			Tokens:   p.Tokens,
			Outcome:  p.Outcome,
			Exempt:   p.Exempt,
			Inferred: p.Inferred,
		}
	}

	if opts.DBPath != "" {
		run, err := saveRun(cmd, opts.DBPath, harness.CatalogInput(path, selected, params))
		if err != nil {
			return formatter.Fail(ErrCodeStore, "failed to save run", err)
		}
		result.RunID = run.ID
		result.Digest = run.Digest
		logger.Info("run saved", "run_id", run.ID, "scenarios", run.ScenarioCount)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	printGenerateText(formatter, result)
	return nil
}

func saveRun(cmd *cobra.Command, dbPath string, in store.RunInput) (store.Run, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return store.Run{}, err
	}
	defer st.Close()

	return st.SaveRun(cmd.Context(), in)
}

func printGenerateText(f *OutputFormatter, r GenerateResult) {
	for _, s := range r.Scenarios {
		fmt.Fprintf(f.Writer, "%s -> %s\n", s.Name, describeOutcome(s.Outcome, s.Exempt, s.Inferred))
	}
	fmt.Fprintln(f.Writer)
	fmt.Fprintf(f.Writer, "%d scenario(s) from %d case(s)\n", len(r.Scenarios), r.Cases)

	if len(r.Outcomes) > 0 {
		outcomes := make([]string, 0, len(r.Outcomes))
		for o := range r.Outcomes {
			outcomes = append(outcomes, o)
		}
		sort.Strings(outcomes)

		parts := make([]string, len(outcomes))
		for i, o := range outcomes {
			label := o
			if label == "" {
				label = "exempt"
			}
			parts[i] = fmt.Sprintf("%s=%d", label, r.Outcomes[o])
		}
		fmt.Fprintf(f.Writer, "outcomes: %s\n", strings.Join(parts, " "))
	}

	if r.RunID != "" {
		fmt.Fprintf(f.Writer, "saved run %s (digest %s)\n", r.RunID, r.Digest)
	}
}

func describeOutcome(outcome string, exempt, inferred bool) string {
	switch {
	case exempt:
		return "exempt"
	case inferred:
		return outcome + " (inferred)"
	default:
		return outcome
	}
}
