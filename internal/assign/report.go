package assign

import (
	"strings"

	"teamreel/internal/diag"
)

// Summary counts the outcome of a run.
type Summary struct {
	Slots      int `json:"slots"`
	Assigned   int `json:"assigned"`
	Duplicates int `json:"duplicates"`
	Unassigned int `json:"unassigned"`
	Warnings   int `json:"warnings"`
}

// Summarize counts assignments, reuse and unassigned slots.
func (r Result) Summarize() Summary {
	s := Summary{
		Slots:    r.Slots,
		Assigned: len(r.Assignments),
		Warnings: len(r.Diagnostics.Warnings()),
	}
	for _, a := range r.Assignments {
		if a.Duplicate {
			s.Duplicates++
		}
	}
	if s.Slots > s.Assigned {
		s.Unassigned = s.Slots - s.Assigned
	}
	return s
}

// SheetUpdates lists the cell updates made on one sheet, e.g. "C4: Peru".
type SheetUpdates struct {
	Sheet   string   `json:"sheet"`
	Updates []string `json:"updates"`
}

// Report is the ordered set of per-sheet updates.
type Report []SheetUpdates

// Add appends an update line for sheet, keeping sheets in first-seen order.
func (r *Report) Add(sheet, update string) {
	for i := range *r {
		if (*r)[i].Sheet == sheet {
			(*r)[i].Updates = append((*r)[i].Updates, update)
			return
		}
	}
	*r = append(*r, SheetUpdates{Sheet: sheet, Updates: []string{update}})
}

// Default report headings.
const (
	DefaultReportHeader = "Placeholder updates applied:"
	DefaultEmptyMessage = "No matching placeholders were found."
)

// FormatReport renders updates and diagnostics for the console.
func FormatReport(report Report, diagnostics diag.List, header, empty string) string {
	var lines []string
	if len(report) > 0 {
		if header != "" {
			lines = append(lines, header)
		}
		for _, sheet := range report {
			lines = append(lines, "• "+sheet.Sheet+":")
			for _, update := range sheet.Updates {
				lines = append(lines, "  - "+update)
			}
		}
	} else if empty != "" {
		lines = append(lines, empty)
	}

	if len(diagnostics) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "Diagnostics:")
		for _, entry := range diagnostics {
			lines = append(lines, "• "+entry.Message)
		}
	}
	return strings.Join(lines, "\n")
}
