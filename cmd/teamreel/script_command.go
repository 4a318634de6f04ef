package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"teamreel/internal/workbook"
)

func newScriptCommand(ctx *commandContext) *cobra.Command {
	var (
		workbookPath string
		feature      bool
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "script NUMBER",
		Short: "Print the script for a team or feature video",
		Long: `Looks a video number up in the catalog sheet's script tables: team scripts in
columns A (number), B (label) and F (script), feature scripts in I, J and O.
NUMBER may be written as on the sheet ("Video 012") or as digits ("12").`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			wb, err := workbook.Open(workbookPath, logger)
			if err != nil {
				return err
			}
			defer wb.Close()

			scripts, diags, err := wb.ScriptRows(workbook.OptionsFromConfig(cfg))
			if err != nil {
				return err
			}
			diags.Log(cmd.Context(), logger)

			kind := workbook.ScriptTeam
			if feature {
				kind = workbook.ScriptFeature
			}
			row, ok := scripts.Lookup(kind, args[0])
			if !ok {
				return fmt.Errorf("no %s video script found for %q", kind, args[0])
			}
			if asJSON {
				return writeJSON(cmd, row)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Video %s · %s (row %d)\n\n", row.Number, row.Label, row.Row+1)
			fmt.Fprintln(out, strings.TrimSpace(row.Script))
			return nil
		},
	}
	cmd.Flags().StringVarP(&workbookPath, "workbook", "w", "", "Event workbook (.xlsx)")
	cmd.Flags().BoolVar(&feature, "feature", false, "Look in the feature script table (I/J/O) instead of team scripts")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the script as JSON")
	_ = cmd.MarkFlagRequired("workbook")
	return cmd
}
