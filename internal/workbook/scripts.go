package workbook

import (
	"fmt"
	"strings"

	"teamreel/internal/diag"
)

// ScriptKind selects one of the script tables on the catalog sheet.
type ScriptKind string

const (
	ScriptTeam    ScriptKind = "team"
	ScriptFeature ScriptKind = "feature"
)

// Script tables live at fixed columns of the catalog sheet: number, label
// and script text.
var scriptColumns = map[ScriptKind][3]string{
	ScriptTeam:    {"A", "B", "F"},
	ScriptFeature: {"I", "J", "O"},
}

// ScriptRow is one team or feature video script.
type ScriptRow struct {
	Kind   ScriptKind `json:"kind"`
	Number string     `json:"number"`
	Label  string     `json:"label"`
	Script string     `json:"script"`
	Row    int        `json:"row"`
}

// Scripts indexes script rows by normalised video number. The first row
// for a number wins.
type Scripts struct {
	byKind map[ScriptKind]map[string]ScriptRow
}

// Lookup finds the script for a video number such as "12" or "Video 012".
func (s Scripts) Lookup(kind ScriptKind, number string) (ScriptRow, bool) {
	if !digitRun.MatchString(number) {
		return ScriptRow{}, false
	}
	row, ok := s.byKind[kind][normalizeVideoNumber(number)]
	return row, ok
}

// Len is the number of indexed scripts of kind.
func (s Scripts) Len(kind ScriptKind) int {
	return len(s.byKind[kind])
}

// ScriptRows reads the team (A/B/F) and feature (I/J/O) script tables of
// the catalog sheet. Rows need a script and a number cell containing
// digits; a missing label falls back to the number cell's text.
func (w *Workbook) ScriptRows(opts Options) (Scripts, diag.List, error) {
	var diags diag.List
	scripts := Scripts{byKind: map[ScriptKind]map[string]ScriptRow{
		ScriptTeam:    {},
		ScriptFeature: {},
	}}

	sheet, err := w.findSheet(opts.videosSheet())
	if err != nil {
		return Scripts{}, nil, err
	}
	rows, err := w.rows(sheet)
	if err != nil {
		return Scripts{}, nil, err
	}
	if len(rows) == 0 {
		diags.Warnf(diag.KindDegenerateInput, 0, "%s tab does not contain any data.", sheet)
		return scripts, diags, nil
	}

	for _, kind := range []ScriptKind{ScriptTeam, ScriptFeature} {
		letters := scriptColumns[kind]
		var cols [3]int
		for i, l := range letters {
			c, err := columnIndex(l)
			if err != nil {
				return Scripts{}, nil, fmt.Errorf("%s script column %q: %w", kind, l, err)
			}
			cols[i] = c
		}
		index := scripts.byKind[kind]
		for rowIndex, row := range rows {
			numberText := cellText(row, cols[0])
			script := cellText(row, cols[2])
			if script == "" || !digitRun.MatchString(numberText) {
				continue
			}
			number := normalizeVideoNumber(numberText)
			if _, seen := index[number]; seen {
				continue
			}
			label := cellText(row, cols[1])
			if label == "" {
				label = numberText
			}
			index[number] = ScriptRow{Kind: kind, Number: number, Label: label, Script: script, Row: rowIndex}
		}
		if len(index) == 0 {
			diags.Warnf(diag.KindDegenerateInput, 0, "%s tab did not include any %s video script entries (columns %s).",
				sheet, kind, strings.Join(letters[:], "/"))
		}
	}
	return scripts, diags, nil
}
