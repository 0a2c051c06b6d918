package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pplmatch/internal/api"
	"pplmatch/internal/legislature"
)

type dateLookup struct {
	Date        string `json:"date"`
	Legislature *int   `json:"legislature"`
}

func newPeriodsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "periods [date...]",
		Short: "List legislature periods or resolve dates to legislatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				periods, err := api.Periods(cfg)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, periods)
				}
				rows := make([][]string, 0, len(periods))
				for _, p := range periods {
					rows = append(rows, []string{strconv.Itoa(p.Legislature), p.Start, p.End})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Legislature", "Start", "End"}, rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft}, nil))
				return nil
			}

			index, err := api.LoadIndex(cfg)
			if err != nil {
				return err
			}
			lookups := make([]dateLookup, 0, len(args))
			for _, raw := range args {
				lookup := dateLookup{Date: legislature.CanonicalDate(raw)}
				if leg, ok := index.Resolve(raw); ok {
					lookup.Legislature = &leg
				}
				lookups = append(lookups, lookup)
			}
			if asJSON {
				return writeJSON(cmd, lookups)
			}
			rows := make([][]string, 0, len(lookups))
			for _, l := range lookups {
				leg := "none"
				if l.Legislature != nil {
					leg = strconv.Itoa(*l.Legislature)
				}
				rows = append(rows, []string{l.Date, leg})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Date", "Legislature"}, rows,
				[]columnAlignment{alignLeft, alignRight}, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
