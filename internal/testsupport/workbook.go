package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a fixture workbook. Rows start at A1.
type Sheet struct {
	Name string
	Rows [][]any
}

// WriteWorkbook saves sheets, in order, as an .xlsx file at path.
func WriteWorkbook(t testing.TB, path string, sheets ...Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("new sheet %q: %v", sheet.Name, err)
		}
		for r, row := range sheet.Rows {
			if len(row) == 0 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				t.Fatalf("write %s!%s: %v", sheet.Name, cell, err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// VideosSheet is the catalog used by EventWorkbook:
//
//	row 2  Video 012  🇰🇷 Korea (KOR)  80   0:45  booth "KOR-1"
//	row 3  Video 007  Peru             60   0:30  match "3", booth "Peru Booth"
//	row 4  Video 020  Czech Republic   120  1:00
//	row 5  Video 021  Mexico           (no value)
func VideosSheet() Sheet {
	booth := func(base []any, key, script string) []any {
		row := make([]any, 20)
		copy(row, base)
		for i := len(base); i < len(row); i++ {
			row[i] = ""
		}
		row[16] = key
		row[19] = script
		return row
	}
	return Sheet{
		Name: "Videos",
		Rows: [][]any{
			{"Video Nº", "Team", "Value", "Duration", "Video ID", "Match"},
			booth([]any{"Video 012", "🇰🇷 Korea (KOR)", 80, "0:45", "vid-kor", ""}, "KOR-1", "Welcome to the Korean delegation."),
			booth([]any{"Video 007", "Peru", 60, "0:30", "vid-per", "3"}, "Peru Booth", "Peru interview script."),
			{"Video 020", "Czech Republic", "120", "1:00", "vid-cze"},
			{"Video 021", "Mexico", "", "0:50", "vid-mex"},
		},
	}
}

// RunOfShowSheet is a run-of-show with one placeholder before match #12
// and one before match #14. The task column is C, video number B and
// duration A.
func RunOfShowSheet(name string) Sheet {
	return Sheet{
		Name: name,
		Rows: [][]any{
			{"DURATION", "VIDEO #", "TASK"},
			{"", "", "TEAM VIDEO PLACEHOLDER"},
			{"", "", "RANKING MATCH #12"},
			{"", "", "TEAM VIDEO PLACEHOLDER"},
			{"", "", "Ranking Match 14"},
		},
	}
}

// EventWorkbook writes a workbook with the Videos catalog and a "Day 1"
// run-of-show into a temp directory and returns its path.
func EventWorkbook(t testing.TB) string {
	t.Helper()
	return WriteWorkbook(t, filepath.Join(t.TempDir(), "event.xlsx"), VideosSheet(), RunOfShowSheet("Day 1"))
}

// ScheduleJSON is a schedule matching EventWorkbook: match #12 is Korea
// against Peru, match #14 Czechia against Mexico.
const ScheduleJSON = `{
  "matches": [
    {"matchNumber": 12, "field": 1, "teams": [{"country": "KOR"}, {"country": "PER"}]},
    {"matchNumber": 14, "field": 1, "teams": [{"countryCode": "CZE"}, {"countryCode": "MEX"}]},
    {"matchNumber": 15, "field": 2, "teams": [{"country": "USA"}]}
  ]
}`

// PrepSheet is a run-of-show before preparation: flag rows in the task
// column (C) and unnumbered match markers at C4 and C7.
func PrepSheet(name string) Sheet {
	return Sheet{
		Name: name,
		Rows: [][]any{
			{"DURATION", "VIDEO #", "TASK"},
			{"", "", "🇰🇷 Korea"},
			{"", "", "🇵🇪 Peru"},
			{"", "", "RANKING MATCH"},
			{"", "", "Break"},
			{"", "", "🇨🇿 Czechia"},
			{"", "", "RANKING MATCH"},
		},
	}
}

// ScriptsSheet is a catalog sheet carrying the team (A/B/F) and feature
// (I/J/O) script tables. Video 12 appears twice; the first row wins.
func ScriptsSheet() Sheet {
	row := func(cells map[int]string) []any {
		out := make([]any, 15)
		for i := range out {
			out[i] = cells[i]
		}
		return out
	}
	return Sheet{
		Name: "Videos",
		Rows: [][]any{
			row(map[int]string{0: "Video Nº", 1: "Team", 5: "Script", 8: "Feature Nº", 9: "Feature", 14: "Script"}),
			row(map[int]string{0: "Video 012", 1: "Korea", 5: "Korea team script.", 8: "Feature 3", 9: "Opening feature", 14: "Feature script three."}),
			row(map[int]string{0: "Video 007", 1: "Peru", 5: "Peru team script."}),
			row(map[int]string{0: "Video 12", 1: "Korea again", 5: "Second Korea script."}),
			row(map[int]string{0: "14", 5: "Unlabelled script."}),
		},
	}
}

// PrepWorkbook writes an unprepared workbook: "Day 1" and "Day 2"
// run-of-shows, an "OC Rehearsal" sheet with a flag row, and the script
// catalog.
func PrepWorkbook(t testing.TB) string {
	t.Helper()
	return WriteWorkbook(t, filepath.Join(t.TempDir(), "prep.xlsx"),
		PrepSheet("Day 1"),
		PrepSheet("Day 2"),
		Sheet{Name: "OC Rehearsal", Rows: [][]any{{"TASK"}, {"🇰🇷 Korea"}}},
		ScriptsSheet(),
	)
}

// PrepScheduleJSON matches PrepWorkbook on field 1: matches 1 and 3 on
// 2024-05-01 (listed out of order) and 5 and 6 on 2024-05-02. Match 2 is on
// field 2.
const PrepScheduleJSON = `[
  {"matchNumber": 3, "field": 1, "scheduledTime": "2024-05-01T10:00:00Z", "teams": ["KOR", "PER"]},
  {"matchNumber": 1, "field": 1, "scheduledTime": "2024-05-01T09:00:00Z", "teams": ["CZE", "MEX"]},
  {"matchNumber": 2, "field": 2, "scheduledTime": "2024-05-01T09:30:00Z", "teams": ["USA", "JPN"]},
  {"matchNumber": 6, "field": 1, "scheduledTime": "2024-05-02T13:00:00Z", "teams": ["KOR", "MEX"]},
  {"matchNumber": 5, "field": 1, "scheduledTime": "2024-05-02T09:00:00+02:00", "teams": ["PER", "CZE"]}
]`
