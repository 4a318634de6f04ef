package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"teamreel/internal/workbook"
)

func newBoothCommand(ctx *commandContext) *cobra.Command {
	var workbookPath string

	cmd := &cobra.Command{
		Use:   "booth LABEL",
		Short: "Print the interview booth script for a hand-typed label",
		Args:  cobra.MinimumNArgs(1),
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

			rows, err := wb.BoothRows(workbook.OptionsFromConfig(cfg))
			if err != nil {
				return err
			}
			label := strings.Join(args, " ")
			row, ok := workbook.MatchBooth(label, rows, cfg.Matching.FuzzyThreshold)
			if !ok {
				return fmt.Errorf("no booth entry matches %q", label)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (row %d)\n", row.Key, row.Row+1)
			fmt.Fprintln(out, row.Script)
			return nil
		},
	}

	cmd.Flags().StringVarP(&workbookPath, "workbook", "w", "", "Event workbook (.xlsx)")
	_ = cmd.MarkFlagRequired("workbook")
	return cmd
}
