package workbook

import (
	"errors"
	"fmt"
	"strings"

	"teamreel/internal/assign"
	"teamreel/internal/diag"
	"teamreel/internal/logging"
	"teamreel/internal/schedule"
	"teamreel/internal/slots"
)

// ErrScheduleMismatch is returned when the schedule's days do not line up
// with the run-of-show sheets that hold match markers.
var ErrScheduleMismatch = errors.New("match schedule does not match the workbook")

// skipSheetMarker excludes sheets (for example "OC Rehearsal") from
// placeholder generation.
const skipSheetMarker = "OC"

// Plan is a set of cell writes that has not been applied yet.
type Plan struct {
	updates []cellUpdate
}

// Len is the number of planned cell writes.
func (p Plan) Len() int { return len(p.updates) }

// Report lists the planned writes per sheet.
func (p Plan) Report() assign.Report { return report(p.updates) }

// Write applies the plan to the open workbook. Call Save to persist it.
func (w *Workbook) Write(p Plan) error {
	if err := w.write(p.updates); err != nil {
		return err
	}
	w.logger.Info("workbook updated", logging.Int("cells", len(p.updates)))
	return nil
}

// MatchSheet holds the match marker cells of one sheet.
type MatchSheet struct {
	Name  string
	Index int
	Cells []slots.MatchCell
}

// HasMatchNumbers reports whether any marker already carries a number.
func HasMatchNumbers(sheets []MatchSheet) bool {
	for _, sheet := range sheets {
		for _, cell := range sheet.Cells {
			if cell.Numbered {
				return true
			}
		}
	}
	return false
}

// PlanPlaceholders turns flag rows in each run-of-show task column into
// sequential placeholder markers. The catalog sheet and sheets whose name
// contains "OC" are skipped.
func (w *Workbook) PlanPlaceholders(opts Options) (Plan, diag.List, error) {
	var (
		plan  Plan
		diags diag.List
	)
	diags.Infof(diag.KindInfo, 0, "Placeholder detection looks for rows whose %s value begins with an emoji flag.", taskHeader(opts))

	videos := strings.ToLower(opts.videosSheet())
	for index, sheet := range w.file.GetSheetList() {
		if strings.ToLower(strings.TrimSpace(sheet)) == videos {
			continue
		}
		if strings.Contains(sheet, skipSheetMarker) {
			diags.Infof(diag.KindInfo, 0, "%s: Skipped because the sheet name contains '%s'.", sheet, skipSheetMarker)
			continue
		}
		rows, err := w.rows(sheet)
		if err != nil {
			return Plan{}, nil, err
		}
		if len(rows) == 0 {
			continue
		}
		cells, sheetDiags := slots.PlanPlaceholders(sheet, index, rows, opts.slotOptions())
		diags.Extend(sheetDiags)
		for _, c := range cells {
			cell, err := cellName(c.Column, c.Row)
			if err != nil {
				return Plan{}, nil, fmt.Errorf("placeholder cell on %s row %d: %w", sheet, c.Row+1, err)
			}
			plan.updates = append(plan.updates, cellUpdate{sheet: sheet, cell: cell, value: c.Text, line: cell + ": " + c.Text})
		}
		if len(cells) > 0 {
			w.logger.Debug("placeholders planned",
				logging.String(logging.FieldSheet, sheet),
				logging.Int("cells", len(cells)),
			)
		}
	}
	return plan, diags, nil
}

// MatchCells collects the match marker cells of every sheet except the
// catalog sheet, in workbook order. Sheets without markers are kept with
// no cells and diagnosed.
func (w *Workbook) MatchCells(opts Options) ([]MatchSheet, diag.List, error) {
	var (
		sheets []MatchSheet
		diags  diag.List
	)
	marker := matchMarker(opts)
	videos := strings.ToLower(opts.videosSheet())
	for index, sheet := range w.file.GetSheetList() {
		if strings.ToLower(strings.TrimSpace(sheet)) == videos {
			continue
		}
		rows, err := w.rows(sheet)
		if err != nil {
			return nil, nil, err
		}
		entry := MatchSheet{Name: sheet, Index: index}
		switch {
		case len(rows) == 0:
			diags.Infof(diag.KindInfo, 0, "%s: No data available to inspect.", sheet)
		default:
			entry.Cells = slots.FindMatchCells(rows, opts.slotOptions())
			if len(entry.Cells) == 0 {
				diags.Infof(diag.KindInfo, 0, "%s: No %s cells found.", sheet, marker)
			}
		}
		sheets = append(sheets, entry)
	}
	return sheets, diags, nil
}

// AlignMatchNumbers pairs schedule days, in date order, with the sheets
// that hold match markers, in workbook order, and returns the match numbers
// for each sheet. Every day must have exactly as many matches as its sheet
// has markers and every match needs a number; otherwise an error wrapping
// ErrScheduleMismatch is returned.
func AlignMatchNumbers(sheets []MatchSheet, days []schedule.Day, opts Options) (map[string][]int, diag.List, error) {
	marker := matchMarker(opts)
	var withCells []MatchSheet
	for _, sheet := range sheets {
		if len(sheet.Cells) > 0 {
			withCells = append(withCells, sheet)
		}
	}

	switch {
	case len(days) > len(withCells):
		extra := days[len(withCells)]
		return nil, nil, fmt.Errorf("%w: the number of matches (%d) in the schedule for %s doesn't match the number of %s slots in N/A (no sheet available)",
			ErrScheduleMismatch, len(extra.Records), extra.Date, marker)
	case len(withCells) > len(days):
		return nil, nil, fmt.Errorf("%w: the number of matches (0) in the schedule for N/A doesn't match the number of %s slots in %s",
			ErrScheduleMismatch, marker, withCells[len(days)].Name)
	}

	var diags diag.List
	numbers := make(map[string][]int, len(withCells))
	for i, day := range days {
		sheet := withCells[i]
		if len(day.Records) != len(sheet.Cells) {
			return nil, nil, fmt.Errorf("%w: the number of matches (%d) in the schedule for %s doesn't match the number of %s slots in %s",
				ErrScheduleMismatch, len(day.Records), day.Date, marker, sheet.Name)
		}
		list := make([]int, 0, len(day.Records))
		for _, record := range day.Records {
			n, ok := record.MatchNumber()
			if !ok {
				return nil, nil, fmt.Errorf("%w: the imported schedule entry is missing a match number. Date: %s. Match details: %s. Ensure this entry includes an 'id' or 'matchNumber' value",
					ErrScheduleMismatch, day.Date, record.Describe())
			}
			list = append(list, n)
		}
		numbers[sheet.Name] = list
		diags.Infof(diag.KindInfo, 0, "Verified %d matches for %s align with sheet %s.", len(day.Records), day.Date, sheet.Name)
	}
	return numbers, diags, nil
}

// PlanMatchNumbers numbers the markers of each sheet. Sheets present in
// numbers take those match numbers in row order; the rest are numbered
// sequentially across the workbook starting at 1. Unless renumber is set,
// markers that already read correctly are left alone.
func PlanMatchNumbers(sheets []MatchSheet, numbers map[string][]int, renumber bool, opts Options) (Plan, diag.List) {
	var (
		plan  Plan
		diags diag.List
	)
	marker := matchMarker(opts)
	counter := 1
	for _, sheet := range sheets {
		if len(sheet.Cells) == 0 {
			continue
		}
		assigned := numbers[sheet.Name]
		if len(assigned) > 0 && len(assigned) != len(sheet.Cells) {
			diags.Warnf(diag.KindDegenerateInput, 0, "%s: Provided match numbers (%d) do not match the number of slots (%d).",
				sheet.Name, len(assigned), len(sheet.Cells))
			continue
		}
		updated := 0
		for i, c := range sheet.Cells {
			var n int
			if len(assigned) > 0 {
				n = assigned[i]
			} else {
				n = counter
				counter++
			}
			text := slots.MatchText(marker, n)
			if !renumber && c.Text == text {
				continue
			}
			cell, err := cellName(c.Column, c.Row)
			if err != nil {
				continue
			}
			plan.updates = append(plan.updates, cellUpdate{sheet: sheet.Name, cell: cell, value: text, line: cell + ": " + text})
			updated++
		}
		diags.Infof(diag.KindInfo, 0, "%s: Numbered %d %s cell(s); updated %d of them.", sheet.Name, len(sheet.Cells), marker, updated)
	}
	return plan, diags
}

func taskHeader(opts Options) string {
	if h := strings.TrimSpace(opts.TaskHeader); h != "" {
		return h
	}
	return slots.DefaultTaskHeader
}

func matchMarker(opts Options) string {
	if m := strings.TrimSpace(opts.MatchMarker); m != "" {
		return m
	}
	return slots.DefaultMatchMarker
}
