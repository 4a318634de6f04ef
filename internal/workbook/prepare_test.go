package workbook_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"teamreel/internal/assign"
	"teamreel/internal/diag"
	"teamreel/internal/logging"
	"teamreel/internal/schedule"
	"teamreel/internal/slots"
	"teamreel/internal/testsupport"
	"teamreel/internal/workbook"
)

func openPrep(t *testing.T) *workbook.Workbook {
	t.Helper()
	wb, err := workbook.Open(testsupport.PrepWorkbook(t), logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func prepDays(t *testing.T, field int) []schedule.Day {
	t.Helper()
	records, err := schedule.Load(strings.NewReader(testsupport.PrepScheduleJSON), field)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	days, _ := schedule.GroupByDate(records)
	return days
}

func matchCells(t *testing.T, wb *workbook.Workbook) []workbook.MatchSheet {
	t.Helper()
	sheets, _, err := wb.MatchCells(workbook.Options{})
	if err != nil {
		t.Fatalf("MatchCells: %v", err)
	}
	return sheets
}

func TestPlanPlaceholdersAcrossSheets(t *testing.T) {
	wb := openPrep(t)
	plan, diags, err := wb.PlanPlaceholders(workbook.Options{})
	if err != nil {
		t.Fatalf("PlanPlaceholders: %v", err)
	}
	want := assign.Report{
		{Sheet: "Day 1", Updates: []string{
			"C2: TEAM VIDEO PLACEHOLDER AAA",
			"C3: TEAM VIDEO PLACEHOLDER AAB",
			"C6: TEAM VIDEO PLACEHOLDER AAC",
		}},
		{Sheet: "Day 2", Updates: []string{
			"C2: TEAM VIDEO PLACEHOLDER BAA",
			"C3: TEAM VIDEO PLACEHOLDER BAB",
			"C6: TEAM VIDEO PLACEHOLDER BAC",
		}},
	}
	if plan.Len() != 6 || !reflect.DeepEqual(plan.Report(), want) {
		t.Fatalf("plan = %d %+v, want %+v", plan.Len(), plan.Report(), want)
	}
	if msgs := diags.Strings(); !slices.Contains(msgs, "OC Rehearsal: Skipped because the sheet name contains 'OC'.") {
		t.Errorf("diagnostics %q missing the OC skip", msgs)
	}
	if len(diags.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %q", diags.Warnings().Strings())
	}

	// Planning leaves the workbook alone until Write.
	if found, _, _ := wb.ScanSlots(workbook.Options{}); len(found) != 0 {
		t.Fatalf("slots before Write: %+v", found)
	}
}

func TestMatchCells(t *testing.T) {
	wb := openPrep(t)
	sheets, diags, err := wb.MatchCells(workbook.Options{})
	if err != nil {
		t.Fatalf("MatchCells: %v", err)
	}
	var names []string
	for _, s := range sheets {
		names = append(names, s.Name)
	}
	if want := []string{"Day 1", "Day 2", "OC Rehearsal"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("sheets = %v, want %v", names, want)
	}
	want := []slots.MatchCell{
		{Row: 3, Column: 2, Text: "RANKING MATCH"},
		{Row: 6, Column: 2, Text: "RANKING MATCH"},
	}
	if !reflect.DeepEqual(sheets[0].Cells, want) || sheets[1].Index != 1 {
		t.Fatalf("Day 1 cells = %+v, Day 2 index = %d", sheets[0].Cells, sheets[1].Index)
	}
	if workbook.HasMatchNumbers(sheets) {
		t.Error("HasMatchNumbers() = true for unnumbered markers")
	}
	if msgs := diags.Strings(); !reflect.DeepEqual(msgs, []string{"OC Rehearsal: No RANKING MATCH cells found."}) {
		t.Errorf("diagnostics = %q", msgs)
	}
}

func TestAlignMatchNumbers(t *testing.T) {
	wb := openPrep(t)
	numbers, diags, err := workbook.AlignMatchNumbers(matchCells(t, wb), prepDays(t, 1), workbook.Options{})
	if err != nil {
		t.Fatalf("AlignMatchNumbers: %v", err)
	}
	want := map[string][]int{"Day 1": {1, 3}, "Day 2": {5, 6}}
	if !reflect.DeepEqual(numbers, want) {
		t.Fatalf("numbers = %v, want %v", numbers, want)
	}
	wantDiags := []string{
		"Verified 2 matches for 2024-05-01 align with sheet Day 1.",
		"Verified 2 matches for 2024-05-02 align with sheet Day 2.",
	}
	if !reflect.DeepEqual(diags.Strings(), wantDiags) {
		t.Errorf("diagnostics = %q", diags.Strings())
	}
}

func TestAlignMatchNumbersMismatch(t *testing.T) {
	oneDay := []schedule.Day{{Date: "2024-05-01", Records: []schedule.Record{
		schedule.Match{"matchNumber": 1}, schedule.Match{"matchNumber": 2},
	}}}
	tests := []struct {
		name string
		days []schedule.Day
		want string
	}{
		{"all fields", prepDays(t, 0), "the number of matches (3) in the schedule for 2024-05-01 doesn't match the number of RANKING MATCH slots in Day 1"},
		{"missing day", oneDay, "the number of matches (0) in the schedule for N/A doesn't match the number of RANKING MATCH slots in Day 2"},
		{"extra day", append(prepDays(t, 1), schedule.Day{Date: "2024-05-03", Records: []schedule.Record{schedule.Match{"matchNumber": 9}}}),
			"the number of matches (1) in the schedule for 2024-05-03 doesn't match the number of RANKING MATCH slots in N/A (no sheet available)"},
		{"unnumbered match", []schedule.Day{
			{Date: "2024-05-01", Records: []schedule.Record{schedule.Match{"matchNumber": 1}, schedule.Match{"name": "Exhibition"}}},
			{Date: "2024-05-02", Records: []schedule.Record{schedule.Match{"matchNumber": 5}, schedule.Match{"matchNumber": 6}}},
		}, "missing a match number. Date: 2024-05-01. Match details: name=Exhibition"},
	}
	wb := openPrep(t)
	sheets := matchCells(t, wb)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := workbook.AlignMatchNumbers(sheets, tt.days, workbook.Options{})
			if !errors.Is(err, workbook.ErrScheduleMismatch) {
				t.Fatalf("err = %v, want ErrScheduleMismatch", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestPlanMatchNumbers(t *testing.T) {
	numbered := []workbook.MatchSheet{
		{Name: "Day 1", Cells: []slots.MatchCell{
			{Row: 3, Column: 2, Text: "RANKING MATCH #1", Numbered: true},
			{Row: 6, Column: 2, Text: "RANKING MATCH"},
		}},
		{Name: "Day 2", Cells: []slots.MatchCell{{Row: 3, Column: 2, Text: "RANKING MATCH #2", Numbered: true}}},
		{Name: "Notes"},
	}
	tests := []struct {
		name     string
		numbers  map[string][]int
		renumber bool
		want     assign.Report
	}{
		{"sequential keeps correct cells", nil, false, assign.Report{
			{Sheet: "Day 1", Updates: []string{"C7: RANKING MATCH #2"}},
			{Sheet: "Day 2", Updates: []string{"C4: RANKING MATCH #3"}},
		}},
		{"renumber writes every cell", nil, true, assign.Report{
			{Sheet: "Day 1", Updates: []string{"C4: RANKING MATCH #1", "C7: RANKING MATCH #2"}},
			{Sheet: "Day 2", Updates: []string{"C4: RANKING MATCH #3"}},
		}},
		{"schedule numbers", map[string][]int{"Day 1": {4, 8}, "Day 2": {2}}, false, assign.Report{
			{Sheet: "Day 1", Updates: []string{"C4: RANKING MATCH #4", "C7: RANKING MATCH #8"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, _ := workbook.PlanMatchNumbers(numbered, tt.numbers, tt.renumber, workbook.Options{})
			if got := plan.Report(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("report = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlanMatchNumbersCountMismatch(t *testing.T) {
	sheets := []workbook.MatchSheet{{Name: "Day 1", Cells: []slots.MatchCell{{Row: 3, Column: 2, Text: "RANKING MATCH"}}}}
	plan, diags := workbook.PlanMatchNumbers(sheets, map[string][]int{"Day 1": {4, 8}}, false, workbook.Options{})
	if plan.Len() != 0 {
		t.Fatalf("plan = %+v, want no writes", plan.Report())
	}
	warnings := diags.Warnings()
	if len(warnings) != 1 || warnings[0].Kind != diag.KindDegenerateInput ||
		warnings[0].Message != "Day 1: Provided match numbers (2) do not match the number of slots (1)." {
		t.Errorf("warnings = %q", warnings.Strings())
	}
}

func TestPreparedWorkbookYieldsSlots(t *testing.T) {
	wb := openPrep(t)
	placeholders, _, err := wb.PlanPlaceholders(workbook.Options{})
	if err != nil {
		t.Fatalf("PlanPlaceholders: %v", err)
	}
	if err := wb.Write(placeholders); err != nil {
		t.Fatalf("Write placeholders: %v", err)
	}
	sheets := matchCells(t, wb)
	numbers, _, err := workbook.AlignMatchNumbers(sheets, prepDays(t, 1), workbook.Options{})
	if err != nil {
		t.Fatalf("AlignMatchNumbers: %v", err)
	}
	plan, _ := workbook.PlanMatchNumbers(sheets, numbers, false, workbook.Options{})
	if err := wb.Write(plan); err != nil {
		t.Fatalf("Write numbers: %v", err)
	}

	output := filepath.Join(t.TempDir(), "prepared.xlsx")
	if err := wb.Save(output); err != nil {
		t.Fatalf("Save: %v", err)
	}
	saved, err := excelize.OpenFile(output)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer saved.Close()
	if got, _ := saved.GetCellValue("Day 2", "C7"); got != "RANKING MATCH #6" {
		t.Errorf("Day 2!C7 = %q", got)
	}
	if got, _ := saved.GetCellValue("OC Rehearsal", "A2"); got != "🇰🇷 Korea" {
		t.Errorf("OC Rehearsal!A2 = %q, want it untouched", got)
	}

	reopened, err := workbook.Open(output, nil)
	if err != nil {
		t.Fatalf("Open output: %v", err)
	}
	defer reopened.Close()
	found, _, err := reopened.ScanSlots(workbook.Options{})
	if err != nil {
		t.Fatalf("ScanSlots: %v", err)
	}
	var got []string
	for _, s := range found {
		got = append(got, s.String())
	}
	want := []string{
		"Day 1 row 2 (match #1, placeholder 0)",
		"Day 1 row 3 (match #1, placeholder 1)",
		"Day 1 row 6 (match #3, placeholder 0)",
		"Day 2 row 2 (match #5, placeholder 0)",
		"Day 2 row 3 (match #5, placeholder 1)",
		"Day 2 row 6 (match #6, placeholder 0)",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("slots = %q, want %q", got, want)
	}
}

func TestScriptRows(t *testing.T) {
	wb := openPrep(t)
	scripts, diags, err := wb.ScriptRows(workbook.Options{})
	if err != nil {
		t.Fatalf("ScriptRows: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("diagnostics = %q", diags.Strings())
	}
	if scripts.Len(workbook.ScriptTeam) != 3 || scripts.Len(workbook.ScriptFeature) != 1 {
		t.Fatalf("Len = %d team, %d feature", scripts.Len(workbook.ScriptTeam), scripts.Len(workbook.ScriptFeature))
	}

	tests := []struct {
		kind   workbook.ScriptKind
		number string
		want   workbook.ScriptRow
		wantOK bool
	}{
		{workbook.ScriptTeam, "12", workbook.ScriptRow{Kind: workbook.ScriptTeam, Number: "12", Label: "Korea", Script: "Korea team script.", Row: 1}, true},
		{workbook.ScriptTeam, "Video Nº 007", workbook.ScriptRow{Kind: workbook.ScriptTeam, Number: "7", Label: "Peru", Script: "Peru team script.", Row: 2}, true},
		{workbook.ScriptTeam, "14", workbook.ScriptRow{Kind: workbook.ScriptTeam, Number: "14", Label: "14", Script: "Unlabelled script.", Row: 4}, true},
		{workbook.ScriptFeature, "3", workbook.ScriptRow{Kind: workbook.ScriptFeature, Number: "3", Label: "Opening feature", Script: "Feature script three.", Row: 1}, true},
		{workbook.ScriptFeature, "12", workbook.ScriptRow{}, false},
		{workbook.ScriptTeam, "Video", workbook.ScriptRow{}, false},
	}
	for _, tt := range tests {
		got, ok := scripts.Lookup(tt.kind, tt.number)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Lookup(%s, %q) = %+v, %v; want %+v, %v", tt.kind, tt.number, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestScriptRowsWithoutScripts(t *testing.T) {
	wb, _ := openEvent(t)
	_, diags, err := wb.ScriptRows(workbook.Options{VideosSheet: "Day 1"})
	if err != nil {
		t.Fatalf("ScriptRows: %v", err)
	}
	want := []string{
		"Day 1 tab did not include any team video script entries (columns A/B/F).",
		"Day 1 tab did not include any feature video script entries (columns I/J/O).",
	}
	if !reflect.DeepEqual(diags.Strings(), want) {
		t.Errorf("diagnostics = %q", diags.Strings())
	}

	if _, _, err := wb.ScriptRows(workbook.Options{VideosSheet: "Scripts"}); !errors.Is(err, workbook.ErrSheetNotFound) {
		t.Errorf("missing sheet err = %v, want ErrSheetNotFound", err)
	}
}
