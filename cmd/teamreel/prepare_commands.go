package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"teamreel/internal/assign"
	"teamreel/internal/diag"
	"teamreel/internal/logging"
	"teamreel/internal/schedule"
	"teamreel/internal/workbook"
)

type prepareOutput struct {
	DryRun      bool          `json:"dry_run"`
	Workbook    string        `json:"workbook"`
	Output      string        `json:"output,omitempty"`
	Cells       int           `json:"cells"`
	Updates     assign.Report `json:"updates"`
	Diagnostics diag.List     `json:"diagnostics"`
}

func newPlaceholdersCommand(ctx *commandContext) *cobra.Command {
	var (
		workbookPath string
		opts         writeOptions
	)
	cmd := &cobra.Command{
		Use:   "placeholders",
		Short: "Turn flag rows into numbered team video placeholders",
		Long: `Replaces every run-of-show task cell that starts with a flag emoji with
"TEAM VIDEO PLACEHOLDER <code>". Codes are the sheet letter (A for the first
sheet) followed by AA..ZZ and continue after codes already present. Sheets
whose name contains "OC" are left alone.`,
		Args: cobra.NoArgs,
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

			plan, diags, err := wb.PlanPlaceholders(workbook.OptionsFromConfig(cfg))
			if err != nil {
				return err
			}
			diags.Log(cmd.Context(), logging.NewComponentLogger(logger, "placeholders"))
			return finishPlan(cmd, wb, plan, diags, workbookPath, opts, planText{
				applied: "Placeholder markers written:",
				planned: "Placeholder markers planned (dry run):",
				empty:   "No flag rows needed a placeholder.",
			})
		},
	}
	cmd.Flags().StringVarP(&workbookPath, "workbook", "w", "", "Event workbook (.xlsx)")
	opts.register(cmd, "Show the planned markers without writing")
	_ = cmd.MarkFlagRequired("workbook")
	return cmd
}

type numberMatchesOptions struct {
	workbookPath string
	schedulePath string
	field        int
	renumber     bool
	writeOptions
}

func newNumberMatchesCommand(ctx *commandContext) *cobra.Command {
	var opts numberMatchesOptions
	cmd := &cobra.Command{
		Use:   "number-matches",
		Short: "Number the RANKING MATCH markers of the run-of-show",
		Long: `Writes "RANKING MATCH #n" into every match marker cell. With --schedule the
schedule's days, in date order, are paired with the sheets that hold markers
and each sheet takes its day's match numbers in running order; the day and
sheet counts must agree. Without a schedule markers are numbered 1, 2, 3...
across the workbook. Existing numbers are only replaced with --renumber.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("field") {
				opts.field = -1
			}
			return runNumberMatches(cmd, ctx, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.workbookPath, "workbook", "w", "", "Event workbook (.xlsx)")
	cmd.Flags().StringVarP(&opts.schedulePath, "schedule", "s", "", "Match schedule (JSON) to take match numbers from")
	cmd.Flags().IntVar(&opts.field, "field", 0, "Only use matches on this field number (0 = all; default from config)")
	cmd.Flags().BoolVar(&opts.renumber, "renumber", false, "Rewrite markers that already carry a number")
	opts.writeOptions.register(cmd, "Show the planned numbers without writing")
	_ = cmd.MarkFlagRequired("workbook")
	return cmd
}

func runNumberMatches(cmd *cobra.Command, ctx *commandContext, opts numberMatchesOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	wb, err := workbook.Open(opts.workbookPath, logger)
	if err != nil {
		return err
	}
	defer wb.Close()

	wbOpts := workbook.OptionsFromConfig(cfg)
	sheets, diags, err := wb.MatchCells(wbOpts)
	if err != nil {
		return err
	}

	var plan workbook.Plan
	if workbook.HasMatchNumbers(sheets) && !opts.renumber {
		diags.Warnf(diag.KindDegenerateInput, 0, "The workbook already has numbered match markers; pass --renumber to overwrite them.")
	} else {
		var numbers map[string][]int
		if opts.schedulePath != "" {
			field := opts.field
			if field < 0 {
				field = cfg.Schedule.Field
			}
			records, err := schedule.LoadFile(opts.schedulePath, field)
			if err != nil {
				return err
			}
			days, dayDiags := schedule.GroupByDate(records)
			diags.Extend(dayDiags)
			aligned, alignDiags, err := workbook.AlignMatchNumbers(sheets, days, wbOpts)
			if err != nil {
				return err
			}
			diags.Extend(alignDiags)
			numbers = aligned
		}
		var planDiags diag.List
		plan, planDiags = workbook.PlanMatchNumbers(sheets, numbers, opts.renumber, wbOpts)
		diags.Extend(planDiags)
	}
	diags.Log(cmd.Context(), logging.NewComponentLogger(logger, "matches"))

	return finishPlan(cmd, wb, plan, diags, opts.workbookPath, opts.writeOptions, planText{
		applied: "Match numbers written:",
		planned: "Match numbers planned (dry run):",
		empty:   "No match markers needed a number.",
	})
}

type planText struct {
	applied string
	planned string
	empty   string
}

// finishPlan writes and saves plan unless this is a dry run, then reports.
// Nothing is saved when the plan is empty.
func finishPlan(cmd *cobra.Command, wb *workbook.Workbook, plan workbook.Plan, diags diag.List, workbookPath string, opts writeOptions, text planText) error {
	var output string
	if !opts.dryRun && plan.Len() > 0 {
		if err := wb.Write(plan); err != nil {
			return err
		}
		target := opts.target(workbookPath)
		if err := saveWorkbook(wb, target); err != nil {
			return err
		}
		output = target
	}

	if opts.json {
		return writeJSON(cmd, prepareOutput{
			DryRun:      opts.dryRun,
			Workbook:    workbookPath,
			Output:      output,
			Cells:       plan.Len(),
			Updates:     nonNil(plan.Report()),
			Diagnostics: nonNil(diags),
		})
	}

	header := text.applied
	if opts.dryRun {
		header = text.planned
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, assign.FormatReport(plan.Report(), diags, header, text.empty))
	if output != "" {
		fmt.Fprintf(out, "\nSaved %d cell(s) to %s\n", plan.Len(), output)
	}
	return nil
}
