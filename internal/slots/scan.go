package slots

import (
	"regexp"
	"strconv"
	"strings"

	"teamreel/internal/diag"
	"teamreel/internal/textutil"
)

// Default markers used by run-of-show sheets.
const (
	DefaultTaskHeader        = "TASK"
	DefaultPlaceholderMarker = "TEAM VIDEO PLACEHOLDER"
	DefaultMatchMarker       = "RANKING MATCH"
)

// headerScanRows is how many leading rows are searched for the task header.
const headerScanRows = 10

var (
	videoNumberHeaders = textutil.HeaderSet("VIDEO #", "VIDEO NO", "VIDEO N°", "VIDEO Nº", "VIDEO NUMBER", "VIDEO NUM", "VIDEO N")
	durationHeaders    = textutil.HeaderSet("DURATION", "DURACION", "DURACIÓN", "LENGTH")
)

// Options names the markers a sheet uses. Zero values select the defaults.
type Options struct {
	TaskHeader        string
	PlaceholderMarker string
	MatchMarker       string
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.TaskHeader) == "" {
		o.TaskHeader = DefaultTaskHeader
	}
	if strings.TrimSpace(o.PlaceholderMarker) == "" {
		o.PlaceholderMarker = DefaultPlaceholderMarker
	}
	if strings.TrimSpace(o.MatchMarker) == "" {
		o.MatchMarker = DefaultMatchMarker
	}
	return o
}

// MatchNumberPattern matches "<marker> #12" style cells, capturing the number.
func MatchNumberPattern(marker string) *regexp.Regexp {
	if strings.TrimSpace(marker) == "" {
		marker = DefaultMatchMarker
	}
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(strings.TrimSpace(marker)) + `\s*#?\s*(\d+)`)
}

// Scan collects the placeholder slots of one sheet given as a text grid.
// Consecutive placeholder rows in the task column are bound to the next
// match marker row. Sheets without a task header yield nothing.
func Scan(sheet string, rows [][]string, opts Options) ([]Slot, diag.List) {
	opts = opts.withDefaults()
	var diags diag.List

	taskColumn := findTaskColumn(rows, opts.TaskHeader)
	if taskColumn < 0 {
		return nil, nil
	}
	videoColumn, durationColumn := findAuxColumns(rows)
	if videoColumn < 0 && taskColumn > 0 {
		videoColumn = taskColumn - 1
	}
	if durationColumn < 0 && taskColumn > 1 {
		durationColumn = taskColumn - 2
	}

	placeholder := strings.ToUpper(strings.TrimSpace(opts.PlaceholderMarker))
	marker := strings.ToUpper(strings.TrimSpace(opts.MatchMarker))
	numberPattern := MatchNumberPattern(opts.MatchMarker)

	var slots []Slot
	var pending []int
	for rowIndex, row := range rows {
		if taskColumn >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[taskColumn])
		if text == "" {
			continue
		}
		upper := strings.ToUpper(text)
		if strings.HasPrefix(upper, placeholder) {
			pending = append(pending, rowIndex)
			continue
		}
		if !strings.HasPrefix(upper, marker) {
			continue
		}
		m := numberPattern.FindStringSubmatch(text)
		number := -1
		if m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				number = n
			}
		}
		if number < 0 {
			diags.Warnf(diag.KindMissingMatchNumber, 0,
				"%s: Unable to extract match number from cell value %q.", sheet, text)
			pending = pending[:0]
			continue
		}
		for index, placeholderRow := range pending {
			slots = append(slots, Slot{
				Location: Location{
					Sheet:             sheet,
					Row:               placeholderRow,
					Column:            taskColumn,
					VideoNumberColumn: videoColumn,
					DurationColumn:    durationColumn,
				},
				Match: number,
				Index: index,
			})
		}
		pending = pending[:0]
	}

	if len(pending) > 0 {
		diags.Warnf(diag.KindOrphanPlaceholder, 0,
			"%s: %d %s row(s) without a following %s were ignored.",
			sheet, len(pending), opts.PlaceholderMarker, opts.MatchMarker)
	}
	return slots, diags
}

func findTaskColumn(rows [][]string, header string) int {
	want := strings.ToUpper(strings.TrimSpace(header))
	for r := 0; r < len(rows) && r < headerScanRows; r++ {
		for c, cell := range rows[r] {
			if strings.ToUpper(strings.TrimSpace(cell)) == want {
				return c
			}
		}
	}
	return -1
}

func findAuxColumns(rows [][]string) (video, duration int) {
	video, duration = -1, -1
	for _, row := range rows {
		for c, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			key := textutil.HeaderKey(cell)
			if video < 0 && videoNumberHeaders[key] {
				video = c
			}
			if duration < 0 && durationHeaders[key] {
				duration = c
			}
		}
		if video >= 0 && duration >= 0 {
			break
		}
	}
	return video, duration
}
