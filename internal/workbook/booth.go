package workbook

import (
	"fmt"

	"teamreel/internal/country"
)

// BoothRow is one interview booth entry: a short hand-typed key and the
// script read for it.
type BoothRow struct {
	Key    string
	Script string
	Row    int
}

// BoothRows reads the booth table from the catalog sheet. Rows missing a
// key or script, or whose key has no letters or digits, are skipped.
func (w *Workbook) BoothRows(opts Options) ([]BoothRow, error) {
	sheet, err := w.findSheet(opts.videosSheet())
	if err != nil {
		return nil, err
	}
	keyLetters, scriptLetters := opts.BoothKeyColumn, opts.BoothScriptColumn
	if keyLetters == "" {
		keyLetters = "Q"
	}
	if scriptLetters == "" {
		scriptLetters = "T"
	}
	keyColumn, err := columnIndex(keyLetters)
	if err != nil {
		return nil, fmt.Errorf("booth key column %q: %w", keyLetters, err)
	}
	scriptColumn, err := columnIndex(scriptLetters)
	if err != nil {
		return nil, fmt.Errorf("booth script column %q: %w", scriptLetters, err)
	}

	rows, err := w.rows(sheet)
	if err != nil {
		return nil, err
	}
	var out []BoothRow
	for rowIndex, row := range rows {
		key := cellText(row, keyColumn)
		script := cellText(row, scriptColumn)
		if key == "" || script == "" || country.BoothKey(key) == "" {
			continue
		}
		out = append(out, BoothRow{Key: key, Script: script, Row: rowIndex})
	}
	return out, nil
}

// MatchBooth finds the booth row for label: an exact normalised key match,
// otherwise the most similar key at or above threshold.
func MatchBooth(label string, rows []BoothRow, threshold float64) (BoothRow, bool) {
	return country.BestFuzzyMatch(label, rows, func(r BoothRow) string { return r.Key }, threshold)
}
