package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pplmatch/internal/api"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <table> <csv>",
		Short: "Load a CSV file into the database",
		Long:  "Load a CSV file into the database as a table of text columns, replacing any table of the same name. Refer to it later as db:<table>.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			n, err := api.ImportTable(cmd.Context(), cfg, logger, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows into db:%s\n", n, args[0])
			return nil
		},
	}
}

func newTablesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List imported tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			names, err := api.ListTables(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if asJSON {
				if names == nil {
					names = []string{}
				}
				return writeJSON(cmd, names)
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tables imported")
				return nil
			}
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "db:%s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print table names as JSON")
	return cmd
}
