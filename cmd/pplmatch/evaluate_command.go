package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pplmatch/internal/api"
	"pplmatch/internal/evaluation"
)

func newEvaluateCommand(ctx *commandContext) *cobra.Command {
	var (
		save        bool
		asJSON      bool
		showDetails bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <matched> <gold>",
		Short: "Score match output against gold annotations",
		Long: `Pair matched rows with gold rows on (speaker, event_date) and report
precision, recall, and F1. The gold table needs speaker, event_date, and
correct_name; an empty correct_name marks a speaker who is not a legislator.`,
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
			result, err := api.RunEvaluate(cmd.Context(), api.RunEvaluateRequest{
				Config:  cfg,
				Logger:  logger,
				Matched: args[0],
				Gold:    args[1],
				Save:    save,
			})
			if err != nil {
				return err
			}
			if asJSON {
				report := result.Report
				if !showDetails {
					report.Details = nil
				}
				return writeJSON(cmd, report)
			}
			printEvaluation(cmd, result, showDetails)
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the report in the database")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().BoolVar(&showDetails, "details", false, "Include per-pair results that were not correct")
	return cmd
}

func printEvaluation(cmd *cobra.Command, result api.RunEvaluateResult, showDetails bool) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	r := result.Report

	for _, line := range renderSectionHeader("Evaluation", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Pairs", statusInfo, strconv.Itoa(r.Total), colorize))
	fmt.Fprintln(out, renderStatusLine("Precision", metricKind(r.Precision), formatMetric(r.Precision), colorize))
	fmt.Fprintln(out, renderStatusLine("Recall", metricKind(r.Recall), formatMetric(r.Recall), colorize))
	fmt.Fprintln(out, renderStatusLine("F1", metricKind(r.F1), formatMetric(r.F1), colorize))
	if r.UnpairedPredictions > 0 || r.UnpairedAnnotations > 0 {
		fmt.Fprintln(out, renderStatusLine("Unpaired", statusWarn,
			fmt.Sprintf("%d matched, %d gold", r.UnpairedPredictions, r.UnpairedAnnotations), colorize))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderTable(
		[]string{"Outcome", "Pairs"},
		[][]string{
			{"true positive", strconv.Itoa(r.TruePositive)},
			{"true negative", strconv.Itoa(r.TrueNegative)},
			{"false positive", strconv.Itoa(r.FalsePositive)},
			{"false negative", strconv.Itoa(r.FalseNegative)},
		},
		[]columnAlignment{alignLeft, alignRight},
		nil,
	))

	if showDetails {
		var rows [][]string
		for _, d := range r.Details {
			if d.Result == evaluation.OutcomeTruePositive || d.Result == evaluation.OutcomeTrueNegative {
				continue
			}
			rows = append(rows, []string{d.EventDate, d.Speaker, d.Predicted, d.Correct, string(d.Result)})
		}
		if len(rows) > 0 {
			fmt.Fprintln(out, renderTable(
				[]string{"Date", "Speaker", "Predicted", "Correct", "Result"},
				rows, nil, nil,
			))
		}
	}
	if result.Evaluation != nil {
		fmt.Fprintf(out, "Saved evaluation %s\n", result.Evaluation.ID)
	}
}

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
