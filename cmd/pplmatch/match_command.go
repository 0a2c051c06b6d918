package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pplmatch/internal/api"
	"pplmatch/internal/dataset"
	"pplmatch/internal/matching"
)

type matchResultJSON struct {
	Summary matching.Summary `json:"summary"`
	Run     *api.RunView     `json:"run,omitempty"`
	Output  string           `json:"output,omitempty"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var (
		output       string
		save         bool
		threshold    float64
		minLeg       int
		maxLeg       int
		legislatures []int
		workers      int
		verbose      bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "match <corpus> <legislators>",
		Short: "Resolve speaker labels against legislator records",
		Long: `Resolve every corpus row to a legislator of the legislature in session on
its event date. The corpus needs speaker and event_date columns; the
legislator table needs full_name, party_id, gender, and legislature_id.

Use --output - to stream the result CSV to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			opts := api.OptionsFromConfig(cfg)
			flags := cmd.Flags()
			if flags.Changed("threshold") {
				if threshold < 0 || threshold > 100 {
					return fmt.Errorf("--threshold must be between 0 and 100, got %g", threshold)
				}
				opts.FuzzyThreshold = threshold
			}
			if flags.Changed("min-legislature") {
				opts.MinLegislature = minLeg
			}
			if flags.Changed("max-legislature") {
				opts.MaxLegislature = maxLeg
			}
			if flags.Changed("legislature") {
				opts.Legislatures = legislatures
			}
			if flags.Changed("workers") {
				opts.Workers = workers
			}
			if flags.Changed("verbose") {
				opts.Verbose = verbose
			}

			toStdout := strings.TrimSpace(output) == "-"
			req := api.RunMatchRequest{
				Config:      cfg,
				Logger:      logger,
				Corpus:      args[0],
				Legislators: args[1],
				Save:        save,
				Options:     &opts,
			}
			if !toStdout {
				req.Output = output
			}
			result, err := api.RunMatch(cmd.Context(), req)
			if err != nil {
				return err
			}

			if toStdout {
				if err := dataset.WriteCSV(cmd.OutOrStdout(), result.Table); err != nil {
					return err
				}
				return nil
			}
			if asJSON {
				return writeJSON(cmd, matchResultJSON{Summary: result.Summary, Run: result.Run, Output: req.Output})
			}
			printMatchSummary(cmd, result, req.Output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "Write the result table as CSV (- for stdout)")
	flags.BoolVar(&save, "save", false, "Save the run in the database")
	flags.Float64Var(&threshold, "threshold", 0, "Fuzzy match threshold from 0 to 100 (defaults to matching.fuzzy_threshold)")
	flags.IntVar(&minLeg, "min-legislature", 0, "Lowest legislature in scope")
	flags.IntVar(&maxLeg, "max-legislature", 0, "Highest legislature in scope")
	flags.IntSliceVar(&legislatures, "legislature", nil, "Explicit legislature set (repeatable or comma separated)")
	flags.IntVar(&workers, "workers", 0, "Parallel workers (0 uses every CPU)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log progress and the final summary")
	flags.BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

func printMatchSummary(cmd *cobra.Command, result api.RunMatchResult, output string) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	s := result.Summary

	for _, line := range renderSectionHeader("Match summary", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Rows", statusInfo, strconv.Itoa(s.Total), colorize))
	fmt.Fprintln(out, renderStatusLine("Matched", statusOK,
		fmt.Sprintf("%d (%s)", s.Matched(), percent(s.Matched(), s.Total)), colorize))
	fmt.Fprintln(out, renderStatusLine("Ambiguous", countKind(s.Ambiguous), strconv.Itoa(s.Ambiguous), colorize))
	fmt.Fprintln(out, renderStatusLine("Unmatched", countKind(s.Unmatched), strconv.Itoa(s.Unmatched), colorize))
	fmt.Fprintln(out)

	rows := [][]string{
		{string(matching.LevelDeterministic), strconv.Itoa(s.Deterministic), percent(s.Deterministic, s.Total)},
		{string(matching.LevelFuzzy), strconv.Itoa(s.Fuzzy), percent(s.Fuzzy, s.Total)},
		{string(matching.LevelContextual), strconv.Itoa(s.Contextual), percent(s.Contextual, s.Total)},
		{string(matching.LevelAmbiguous), strconv.Itoa(s.Ambiguous), percent(s.Ambiguous, s.Total)},
		{string(matching.LevelUnmatched), strconv.Itoa(s.Unmatched), percent(s.Unmatched, s.Total)},
		{string(matching.LevelRole), strconv.Itoa(s.Roles), percent(s.Roles, s.Total)},
		{string(matching.LevelCrowd), strconv.Itoa(s.Crowds), percent(s.Crowds, s.Total)},
		{string(matching.LevelEmpty), strconv.Itoa(s.Empty), percent(s.Empty, s.Total)},
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Level", "Rows", "Share"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
		[]string{"total", strconv.Itoa(s.Total), percent(s.Total, s.Total)},
	))

	if output != "" {
		fmt.Fprintf(out, "Wrote results to %s\n", output)
	}
	if result.Run != nil {
		fmt.Fprintf(out, "Saved run %s (use run:%s as a table reference)\n", result.Run.ID, result.Run.ID)
	}
}
