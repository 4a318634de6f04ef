package workbook

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	"teamreel/internal/assign"
	"teamreel/internal/country"
	"teamreel/internal/logging"
)

type cellUpdate struct {
	sheet string
	cell  string
	value any
	line  string
}

// Apply writes assignments into the workbook and returns the per-sheet
// update report. For each slot the display name goes into the placeholder
// cell and the video number and duration into their columns; each used
// catalog row gets the sorted list of matches it was assigned to.
func (w *Workbook) Apply(assignments []assign.Assignment) (assign.Report, error) {
	updates, err := w.plan(assignments)
	if err != nil {
		return nil, err
	}
	if err := w.write(updates); err != nil {
		return nil, err
	}
	w.logger.Info("workbook updated", logging.Int("cells", len(updates)))
	return report(updates), nil
}

func (w *Workbook) write(updates []cellUpdate) error {
	for _, u := range updates {
		if err := w.file.SetCellValue(u.sheet, u.cell, u.value); err != nil {
			return fmt.Errorf("write %s!%s: %w", u.sheet, u.cell, err)
		}
	}
	return nil
}

// Preview returns the report Apply would produce without touching the file.
func (w *Workbook) Preview(assignments []assign.Assignment) (assign.Report, error) {
	updates, err := w.plan(assignments)
	if err != nil {
		return nil, err
	}
	return report(updates), nil
}

func (w *Workbook) plan(assignments []assign.Assignment) ([]cellUpdate, error) {
	var (
		updates      []cellUpdate
		matchesByRow = map[int][]int{}
		rowOrder     []int
	)
	for _, a := range assignments {
		slot := a.Slot
		name := country.DisplayName(a.Identity)
		if name == "" && a.Video != nil {
			name = a.Video.DisplayName()
		}
		if name == "" {
			name = a.Identity.String()
		}

		cell, err := cellName(slot.Column, slot.Row)
		if err != nil {
			return nil, fmt.Errorf("placeholder cell for %s: %w", slot, err)
		}
		updates = append(updates, cellUpdate{sheet: slot.Sheet, cell: cell, value: name, line: cell + ": " + name})

		if a.Video == nil {
			continue
		}
		if number := strings.TrimSpace(a.Video.VideoNumber); number != "" && slot.VideoNumberColumn >= 0 {
			cell, err := cellName(slot.VideoNumberColumn, slot.Row)
			if err != nil {
				return nil, fmt.Errorf("video number cell for %s: %w", slot, err)
			}
			updates = append(updates, cellUpdate{sheet: slot.Sheet, cell: cell, value: numericOrText(number), line: cell + ": Video Nº " + number})
		}
		if duration := strings.TrimSpace(a.Video.Duration); duration != "" && slot.DurationColumn >= 0 {
			cell, err := cellName(slot.DurationColumn, slot.Row)
			if err != nil {
				return nil, fmt.Errorf("duration cell for %s: %w", slot, err)
			}
			updates = append(updates, cellUpdate{sheet: slot.Sheet, cell: cell, value: duration, line: cell + ": Duration " + duration})
		}

		if _, seen := matchesByRow[a.Video.Row]; !seen {
			rowOrder = append(rowOrder, a.Video.Row)
		}
		matchesByRow[a.Video.Row] = append(matchesByRow[a.Video.Row], slot.Match)
	}

	if w.videos != nil && w.videos.Source.MatchColumn >= 0 {
		source := w.videos.Source
		for _, row := range rowOrder {
			cell, err := cellName(source.MatchColumn, row)
			if err != nil {
				return nil, fmt.Errorf("match cell for catalog row %d: %w", row+1, err)
			}
			value := formatMatchList(uniqueSorted(matchesByRow[row]))
			updates = append(updates, cellUpdate{sheet: source.Sheet, cell: cell, value: value, line: cell + ": Match " + value})
		}
	}
	return updates, nil
}

func report(updates []cellUpdate) assign.Report {
	var r assign.Report
	for _, u := range updates {
		r.Add(u.sheet, u.line)
	}
	sort.SliceStable(r, func(i, j int) bool { return r[i].Sheet < r[j].Sheet })
	return r
}

func uniqueSorted(values []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func numericOrText(text string) any {
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	return text
}

// LockPath is the lock file guarding writes to the workbook at path.
func LockPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".lock")
}

// Save writes the workbook to path, or back to the file it was opened from
// when path is empty. The write holds an exclusive lock; ErrLocked is
// returned when another process holds it.
func (w *Workbook) Save(path string) error {
	if strings.TrimSpace(path) == "" {
		path = w.path
	}
	lock := flock.New(LockPath(path))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire workbook lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() { _ = lock.Unlock() }()

	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	w.logger.Info("workbook saved", logging.String("output", path))
	return nil
}
