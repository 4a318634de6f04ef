package history

import (
	"time"

	"teamreel/internal/assign"
	"teamreel/internal/diag"
)

// Run is one recorded optimisation.
type Run struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	Workbook    string         `json:"workbook"`
	Output      string         `json:"output,omitempty"`
	Schedule    string         `json:"schedule"`
	Field       int            `json:"field,omitempty"`
	Summary     assign.Summary `json:"summary"`
	Diagnostics diag.List      `json:"diagnostics,omitempty"`
}

// Assignment is one filled placeholder of a run. Row is one-based as shown
// in spreadsheet software.
type Assignment struct {
	Sheet       string `json:"sheet"`
	Row         int    `json:"row"`
	Match       int    `json:"match"`
	Placeholder int    `json:"placeholder"`
	Code        string `json:"code"`
	Label       string `json:"label,omitempty"`
	VideoNumber string `json:"video_number,omitempty"`
	Duplicate   bool   `json:"duplicate,omitempty"`
}

// FromResult converts an engine result into history rows.
func FromResult(run Run, result assign.Result) (Run, []Assignment) {
	run.Summary = result.Summarize()
	run.Diagnostics = append(diag.List(nil), result.Diagnostics...)

	rows := make([]Assignment, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		row := Assignment{
			Sheet:       a.Slot.Sheet,
			Row:         a.Slot.Row + 1,
			Match:       a.Slot.Match,
			Placeholder: a.Slot.Index,
			Code:        a.Identity.String(),
			Duplicate:   a.Duplicate,
		}
		if a.Video != nil {
			row.Label = a.Video.DisplayName()
			row.VideoNumber = a.Video.VideoNumber
		}
		rows = append(rows, row)
	}
	return run, rows
}
