package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"teamreel/internal/textutil"
	"teamreel/internal/workbook"
)

// writeOptions are the flags shared by commands that modify the workbook.
type writeOptions struct {
	output string
	suffix string
	dryRun bool
	json   bool
}

func (o *writeOptions) register(cmd *cobra.Command, dryRunHelp string) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Write the updated workbook here instead of in place")
	cmd.Flags().StringVar(&o.suffix, "suffix", "", "Write to <name>.<suffix>.xlsx next to the workbook (ignored with --output)")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, dryRunHelp)
	cmd.Flags().BoolVar(&o.json, "json", false, "Print the result as JSON")
}

// target is the path a save would write to.
func (o writeOptions) target(workbookPath string) string {
	if target := strings.TrimSpace(o.output); target != "" {
		return target
	}
	return textutil.DerivedPath(workbookPath, o.suffix)
}

func saveWorkbook(wb *workbook.Workbook, target string) error {
	if err := wb.Save(target); err != nil {
		if errors.Is(err, workbook.ErrLocked) {
			return fmt.Errorf("%w; another teamreel run may be writing it", err)
		}
		return err
	}
	return nil
}
