package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pplmatch/internal/api"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved match runs",
	}
	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsExportCommand(ctx))
	runsCmd.AddCommand(newRunsDeleteCommand(ctx))
	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			runs, err := api.ListRuns(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved runs")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					formatDisplayTime(run.CreatedAt),
					run.CorpusSource,
					strconv.Itoa(run.Rows),
					fmt.Sprintf("%.1f%%", run.MatchRate*100),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Created", "Corpus", "Rows", "Matched"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
				nil,
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print runs as JSON")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a run and its evaluations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			detail, err := api.ShowRun(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, detail)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			run := detail.Run
			for _, line := range renderSectionHeader("Run "+run.ID, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Created", statusInfo, formatDisplayTime(run.CreatedAt), colorize))
			fmt.Fprintln(out, renderStatusLine("Corpus", statusInfo, run.CorpusSource, colorize))
			fmt.Fprintln(out, renderStatusLine("Legislators", statusInfo, run.LegislatorsSource, colorize))
			fmt.Fprintln(out, renderStatusLine("Threshold", statusInfo, strconv.FormatFloat(run.Options.FuzzyThreshold, 'f', -1, 64), colorize))
			fmt.Fprintln(out, renderStatusLine("Matched", statusOK,
				fmt.Sprintf("%d of %d (%s)", run.Summary.Matched(), run.Summary.Total, percent(run.Summary.Matched(), run.Summary.Total)), colorize))
			fmt.Fprintln(out, renderStatusLine("Ambiguous", countKind(run.Summary.Ambiguous), strconv.Itoa(run.Summary.Ambiguous), colorize))

			if len(detail.Evaluations) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			rows := make([][]string, 0, len(detail.Evaluations))
			for _, ev := range detail.Evaluations {
				rows = append(rows, []string{
					formatDisplayTime(ev.CreatedAt),
					ev.GoldSource,
					formatMetric(ev.Precision),
					formatMetric(ev.Recall),
					formatMetric(ev.F1),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Evaluated", "Gold", "Precision", "Recall", "F1"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
				nil,
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run as JSON")
	return cmd
}

func newRunsExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> <csv>",
		Short: "Write a saved run's result table to CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			n, err := api.ExportRun(cmd.Context(), cfg, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", n, args[1])
			return nil
		},
	}
}

func newRunsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			if err := api.DeleteRun(cmd.Context(), cfg, logger, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
			return nil
		},
	}
}

func formatDisplayTime(value string) string {
	t := api.ParseViewTime(value)
	if t.IsZero() {
		return value
	}
	return t.In(time.Local).Format("2006-01-02 15:04")
}
