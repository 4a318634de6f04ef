package schedule

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"teamreel/internal/diag"
)

// Scheduled is implemented by records that know when they are played.
type Scheduled interface {
	Record
	// StartTime returns the parsed start and its calendar date
	// (YYYY-MM-DD). start is zero when only the date could be read.
	StartTime() (start time.Time, date string, ok bool)
}

// Day is the matches played on one date, in running order.
type Day struct {
	Date    string
	Records []Record
}

var (
	startLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02 15:04:05",
		time.DateOnly,
	}
	datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// StartTime reads "scheduledTime" as an ISO 8601 timestamp. The date is
// taken in the timestamp's own offset.
func (m Match) StartTime() (time.Time, string, bool) {
	raw, ok := m["scheduledTime"].(string)
	if !ok {
		return time.Time{}, "", false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, "", false
	}
	for _, layout := range startLayouts {
		if start, err := time.Parse(layout, raw); err == nil {
			return start, start.Format(time.DateOnly), true
		}
	}
	if date, _, found := strings.Cut(raw, "T"); found && datePrefix.MatchString(date) {
		return time.Time{}, date, true
	}
	return time.Time{}, "", false
}

// GroupByDate splits records by play date. Days come out in date order and
// matches within a day by start time, then match number, then description.
// Records without a readable date are left out and counted in a diagnostic.
func GroupByDate(records []Record) ([]Day, diag.List) {
	type entry struct {
		record Record
		start  time.Time
		number float64
		detail string
	}
	byDate := map[string][]entry{}
	var undated int
	for _, record := range records {
		timed, ok := record.(Scheduled)
		if !ok {
			undated++
			continue
		}
		start, date, ok := timed.StartTime()
		if !ok {
			undated++
			continue
		}
		number := math.Inf(1)
		if n, ok := record.MatchNumber(); ok {
			number = float64(n)
		}
		byDate[date] = append(byDate[date], entry{record: record, start: start.UTC(), number: number, detail: record.Describe()})
	}

	var diags diag.List
	if undated > 0 {
		diags.Infof(diag.KindInfo, 0, "%d schedule entr%s without a scheduled date %s skipped.",
			undated, plural(undated, "y", "ies"), plural(undated, "was", "were"))
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]Day, 0, len(dates))
	for _, date := range dates {
		entries := byDate[date]
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			if a.start.IsZero() != b.start.IsZero() {
				return !a.start.IsZero()
			}
			if !a.start.Equal(b.start) {
				return a.start.Before(b.start)
			}
			if a.number != b.number {
				return a.number < b.number
			}
			return a.detail < b.detail
		})
		day := Day{Date: date, Records: make([]Record, len(entries))}
		for i, e := range entries {
			day.Records[i] = e.record
		}
		days = append(days, day)
	}
	return days, diags
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
