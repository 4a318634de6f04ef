package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"teamreel/internal/assign"
	"teamreel/internal/diag"
	"teamreel/internal/history"
	"teamreel/internal/logging"
	"teamreel/internal/schedule"
	"teamreel/internal/workbook"
)

type optimizeOptions struct {
	workbookPath string
	schedulePath string
	field        int
	writeOptions
}

type optimizeOutput struct {
	RunID       string               `json:"run_id,omitempty"`
	DryRun      bool                 `json:"dry_run"`
	Workbook    string               `json:"workbook"`
	Output      string               `json:"output,omitempty"`
	Summary     assign.Summary       `json:"summary"`
	Assignments []history.Assignment `json:"assignments"`
	Updates     assign.Report        `json:"updates"`
	Diagnostics diag.List            `json:"diagnostics"`
}

func newOptimizeCommand(ctx *commandContext) *cobra.Command {
	var opts optimizeOptions

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Fill team video placeholders from the match schedule",
		Long: `Reads the match schedule and the event workbook, assigns one catalog video
to every TEAM VIDEO PLACEHOLDER row so that each shows a delegation playing in
the following ranking match at minimum total value, and writes the names,
video numbers and durations back into the workbook.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("field") {
				opts.field = -1
			}
			return runOptimize(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.workbookPath, "workbook", "w", "", "Event workbook (.xlsx)")
	cmd.Flags().StringVarP(&opts.schedulePath, "schedule", "s", "", "Match schedule (JSON)")
	cmd.Flags().IntVar(&opts.field, "field", 0, "Only use matches on this field number (0 = all; default from config)")
	opts.writeOptions.register(cmd, "Show the planned updates without writing or recording the run")
	_ = cmd.MarkFlagRequired("workbook")
	_ = cmd.MarkFlagRequired("schedule")

	return cmd
}

func runOptimize(cmd *cobra.Command, ctx *commandContext, opts optimizeOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	field := opts.field
	if field < 0 {
		field = cfg.Schedule.Field
	}

	records, err := schedule.LoadFile(opts.schedulePath, field)
	if err != nil {
		return err
	}
	countries, scheduleDiags := schedule.BuildCountryMap(records, logger)

	wb, err := workbook.Open(opts.workbookPath, logger)
	if err != nil {
		return err
	}
	defer wb.Close()

	wbOpts := workbook.OptionsFromConfig(cfg)
	dataset, videoDiags, err := wb.ReadVideos(wbOpts)
	if err != nil {
		return err
	}
	slotList, slotDiags, err := wb.ScanSlots(wbOpts)
	if err != nil {
		return err
	}

	result := assign.NewEngine(logger).Assign(slotList, countries, dataset)

	var diagnostics diag.List
	diagnostics.Extend(scheduleDiags)
	diagnostics.Extend(videoDiags)
	diagnostics.Extend(slotDiags)
	diagnostics.Extend(result.Diagnostics)
	result.Diagnostics = diagnostics
	diagnostics.Log(cmd.Context(), logging.NewComponentLogger(logger, "diagnostics"))

	var report assign.Report
	// output names the file actually written; it stays empty when nothing was saved.
	var output string
	if opts.dryRun {
		report, err = wb.Preview(result.Assignments)
		if err != nil {
			return err
		}
	} else {
		report, err = wb.Apply(result.Assignments)
		if err != nil {
			return err
		}
		if len(result.Assignments) > 0 {
			target := opts.target(opts.workbookPath)
			if err := saveWorkbook(wb, target); err != nil {
				return err
			}
			output = target
		}
	}

	run, rows := history.FromResult(history.Run{
		Workbook: opts.workbookPath,
		Output:   output,
		Schedule: opts.schedulePath,
		Field:    field,
	}, result)

	if !opts.dryRun && cfg.History.Enabled {
		store, err := history.Open(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		run, err = store.Record(cmd.Context(), run, rows)
		if err != nil {
			return err
		}
		logger.Info("run recorded", logging.String(logging.FieldRunID, run.ID))
	}

	if opts.json {
		return writeJSON(cmd, optimizeOutput{
			RunID:       run.ID,
			DryRun:      opts.dryRun,
			Workbook:    opts.workbookPath,
			Output:      output,
			Summary:     run.Summary,
			Assignments: nonNil(rows),
			Updates:     nonNil(report),
			Diagnostics: nonNil(diagnostics),
		})
	}

	out := cmd.OutOrStdout()
	if len(rows) > 0 {
		fmt.Fprintln(out, renderAssignments(cmd, rows))
	}
	header := assign.DefaultReportHeader
	if opts.dryRun {
		header = "Placeholder updates planned (dry run):"
	}
	fmt.Fprintln(out, assign.FormatReport(report, diagnostics, header, assign.DefaultEmptyMessage))
	fmt.Fprintln(out)
	fmt.Fprintln(out, formatSummary(run.Summary))
	if run.ID != "" {
		fmt.Fprintf(out, "Run %s recorded.\n", run.ID)
	}
	return nil
}

func renderAssignments(cmd *cobra.Command, rows []history.Assignment) string {
	tableRows := make([][]string, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, []string{
			row.Sheet,
			strconv.Itoa(row.Row),
			strconv.Itoa(row.Match),
			strconv.Itoa(row.Placeholder),
			row.Code,
			row.Label,
			row.VideoNumber,
			yesNo(row.Duplicate),
		})
	}
	return renderTable(cmd.OutOrStdout(),
		[]string{"Sheet", "Row", "Match", "Slot", "Code", "Delegation", "Video", "Reused"},
		tableRows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	)
}

func formatSummary(s assign.Summary) string {
	return fmt.Sprintf("Slots: %d · Assigned: %d · Reused: %d · Unassigned: %d · Warnings: %d",
		s.Slots, s.Assigned, s.Duplicates, s.Unassigned, s.Warnings)
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
