package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/scenariocast/internal/store"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	RunID    string
	Latest   bool
	Scenario string
}

func (o *CatalogOptions) selectors() int {
	n := 0
	if o.RunID != "" {
		n++
	}
	if o.Latest {
		n++
	}
	if o.Scenario != "" {
		n++
	}
	return n
}

// RunDetail is one run with its cases and scenarios.
type RunDetail struct {
	Run       store.Run              `json:"run"`
	Cases     []store.CaseRecord     `json:"cases"`
	Scenarios []store.ScenarioRecord `json:"scenarios"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{}

	cmd := &cobra.Command{
		Use:   "catalog <db>",
		Short: "Inspect a scenario catalog",
		Long: `Catalog lists the runs saved by "generate --db". With --run or --latest it
shows the cases and scenarios of one run; with --scenario it shows every
stored occurrence of a scenario ID across runs.`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.RunID, "run", "", "show one run")
	cmd.Flags().BoolVar(&opts.Latest, "latest", false, "show the most recent run")
	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "show the history of a scenario ID")

	return cmd
}

func runCatalog(rootOpts *RootOptions, opts *CatalogOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	if opts.selectors() > 1 {
		msg := "--run, --latest and --scenario are mutually exclusive"
		_ = formatter.Error(ErrCodeFlags, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	// Opening creates the file; a catalog that does not exist is an error.
	if _, err := os.Stat(dbPath); err != nil {
		return formatter.Fail(ErrCodeIO, "catalog not found", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return formatter.Fail(ErrCodeStore, "failed to open catalog", err)
	}
	defer st.Close()

	ctx := cmd.Context()

	switch {
	case opts.Scenario != "":
		history, err := st.ScenarioHistory(ctx, opts.Scenario)
		if err != nil {
			return formatter.Fail(ErrCodeStore, "failed to read scenario history", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(history)
		}
		for _, sc := range history {
			fmt.Fprintf(formatter.Writer, "%s  %s -> %s\n", sc.RunID, sc.Name,
				describeOutcome(sc.Outcome, sc.Exempt, sc.Inferred))
		}
		return nil

	case opts.RunID != "" || opts.Latest:
		var run store.Run
		if opts.Latest {
			run, err = st.LatestRun(ctx)
		} else {
			run, err = st.GetRun(ctx, opts.RunID)
		}
		if errors.Is(err, store.ErrRunNotFound) {
			return formatter.Fail(ErrCodeStore, "run not found", err)
		}
		if err != nil {
			return formatter.Fail(ErrCodeStore, "failed to read run", err)
		}

		detail, err := readRunDetail(cmd, st, run)
		if err != nil {
			return formatter.Fail(ErrCodeStore, "failed to read run", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(detail)
		}
		printRunDetail(formatter, detail)
		return nil

	default:
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return formatter.Fail(ErrCodeStore, "failed to list runs", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(runs)
		}
		if len(runs) == 0 {
			fmt.Fprintln(formatter.Writer, "no runs")
			return nil
		}
		for _, r := range runs {
			printRunLine(formatter, r)
		}
		return nil
	}
}

func readRunDetail(cmd *cobra.Command, st *store.Store, run store.Run) (RunDetail, error) {
	cases, err := st.ReadCases(cmd.Context(), run.ID)
	if err != nil {
		return RunDetail{}, err
	}
	scenarios, err := st.ReadScenarios(cmd.Context(), run.ID)
	if err != nil {
		return RunDetail{}, err
	}
	return RunDetail{Run: run, Cases: cases, Scenarios: scenarios}, nil
}

func printRunLine(f *OutputFormatter, r store.Run) {
	fmt.Fprintf(f.Writer, "%s  %s  %s  %d case(s)  %d scenario(s)\n",
		r.ID, r.CreatedAt.Format(time.RFC3339), r.Source, r.CaseCount, r.ScenarioCount)
}

func printRunDetail(f *OutputFormatter, d RunDetail) {
	printRunLine(f, d.Run)
	fmt.Fprintf(f.Writer, "digest %s\n", d.Run.Digest)

	for _, c := range d.Cases {
		fmt.Fprintln(f.Writer)
		fmt.Fprintf(f.Writer, "case %d: %s\n", c.Index, c.Description)
		fmt.Fprintf(f.Writer, "  rule: %s\n", c.Rule)
		if c.Pair != "" {
			fmt.Fprintf(f.Writer, "  pair: %s\n", c.Pair)
		}
		if c.Exemption != "" {
			fmt.Fprintf(f.Writer, "  exempt: %s\n", c.Exemption)
		}
		for _, sc := range d.Scenarios {
			if sc.CaseIndex != c.Index {
				continue
			}
			fmt.Fprintf(f.Writer, "  %s -> %s\n", sc.Name, describeOutcome(sc.Outcome, sc.Exempt, sc.Inferred))
		}
	}
}
