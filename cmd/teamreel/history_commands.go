package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"teamreel/internal/assign"
	"teamreel/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded optimize runs",
	}
	historyCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print as JSON")

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, nonNil(runs))
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded.")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						run.CreatedAt.Local().Format(time.DateTime),
						run.Workbook,
						strconv.Itoa(run.Summary.Assigned) + "/" + strconv.Itoa(run.Summary.Slots),
						strconv.Itoa(run.Summary.Duplicates),
						strconv.Itoa(run.Summary.Warnings),
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"ID", "When", "Workbook", "Assigned", "Reused", "Warnings"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 = all)")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one run and its assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				run, rows, err := store.Show(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, struct {
						history.Run
						Assignments []history.Assignment `json:"assignments"`
					}{run, nonNil(rows)})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s\n", run.ID)
				fmt.Fprintf(out, "When: %s\n", run.CreatedAt.Local().Format(time.DateTime))
				fmt.Fprintf(out, "Workbook: %s\n", run.Workbook)
				if run.Output != "" && run.Output != run.Workbook {
					fmt.Fprintf(out, "Output: %s\n", run.Output)
				}
				fmt.Fprintf(out, "Schedule: %s\n", run.Schedule)
				if run.Field > 0 {
					fmt.Fprintf(out, "Field: %d\n", run.Field)
				}
				fmt.Fprintln(out, formatSummary(run.Summary))
				if len(rows) > 0 {
					fmt.Fprintln(out, renderAssignments(cmd, rows))
				}
				if len(run.Diagnostics) > 0 {
					fmt.Fprintln(out, assign.FormatReport(nil, run.Diagnostics, "", ""))
				}
				return nil
			})
		},
	}

	historyCmd.AddCommand(listCmd, showCmd)
	return historyCmd
}

func withHistory(ctx *commandContext, fn func(*history.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
