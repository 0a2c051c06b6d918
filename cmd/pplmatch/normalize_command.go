package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pplmatch/internal/api"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "normalize [label...]",
		Short: "Show how speaker labels are classified and normalized",
		Long:  "Classify and normalize speaker labels with the configured lexicon. Labels are read one per line from stdin when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			labels := args
			if len(labels) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					labels = append(labels, scanner.Text())
				}
				if err := scanner.Err(); err != nil {
					return err
				}
			}

			views := api.NormalizeSpeakers(cfg, labels)
			if asJSON {
				return writeJSON(cmd, views)
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{strings.TrimSpace(v.Raw), v.Category, v.Normalized, v.LastName})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Label", "Category", "Normalized", "Last name"}, rows, nil, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
