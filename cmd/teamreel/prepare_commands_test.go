package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"teamreel/internal/testsupport"
	"teamreel/internal/workbook"
)

func writePrepSchedule(t *testing.T, env *cliTestEnv) string {
	t.Helper()
	path := filepath.Join(env.baseDir, "prep-schedule.json")
	if err := os.WriteFile(path, []byte(testsupport.PrepScheduleJSON), 0o644); err != nil {
		t.Fatalf("write schedule: %v", err)
	}
	return path
}

func decodePrepare(t *testing.T, stdout string) prepareOutput {
	t.Helper()
	var result prepareOutput
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout)
	}
	return result
}

func TestPrepareCommandsProduceSlots(t *testing.T) {
	env := setupCLITestEnv(t)
	source := testsupport.PrepWorkbook(t)
	schedulePath := writePrepSchedule(t, env)

	stdout, _, err := runCLI(t, []string{"placeholders", "--workbook", source, "--suffix", "prepared", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("placeholders: %v", err)
	}
	placed := decodePrepare(t, stdout)
	prepared := filepath.Join(filepath.Dir(source), "prep.prepared.xlsx")
	if placed.Cells != 6 || placed.Output != prepared {
		t.Fatalf("placeholders result = %+v", placed)
	}

	stdout, _, err = runCLI(t, []string{
		"number-matches", "--workbook", prepared, "--schedule", schedulePath, "--field", "1", "--json",
	}, env.configPath)
	if err != nil {
		t.Fatalf("number-matches: %v", err)
	}
	numbered := decodePrepare(t, stdout)
	if numbered.Cells != 4 || numbered.Output != prepared {
		t.Fatalf("number-matches result = %+v", numbered)
	}

	wb, err := workbook.Open(prepared, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()
	found, _, err := wb.ScanSlots(workbook.Options{})
	if err != nil {
		t.Fatalf("ScanSlots: %v", err)
	}
	var matches []int
	for _, s := range found {
		matches = append(matches, s.Match)
	}
	if want := []int{1, 1, 3, 5, 5, 6}; !reflect.DeepEqual(matches, want) {
		t.Errorf("slot matches = %v, want %v", matches, want)
	}
}

func TestPlaceholdersDryRunLeavesWorkbook(t *testing.T) {
	env := setupCLITestEnv(t)
	source := testsupport.PrepWorkbook(t)
	before, err := os.ReadFile(source)
	if err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, []string{"placeholders", "--workbook", source, "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("placeholders: %v", err)
	}
	requireContains(t, stdout, "Placeholder markers planned (dry run):")
	requireContains(t, stdout, "C6: TEAM VIDEO PLACEHOLDER BAC")
	requireContains(t, stdout, "OC Rehearsal: Skipped because the sheet name contains 'OC'.")

	after, err := os.ReadFile(source)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(before, after) {
		t.Error("dry run modified the workbook")
	}
}

func TestNumberMatchesKeepsExistingNumbers(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(env.baseDir, "numbered.xlsx")

	stdout, _, err := runCLI(t, []string{"number-matches", "--workbook", env.workbookPath, "--output", output, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("number-matches: %v", err)
	}
	kept := decodePrepare(t, stdout)
	if kept.Cells != 0 || kept.Output != "" {
		t.Fatalf("result = %+v, want no writes", kept)
	}
	var messages []string
	for _, d := range kept.Diagnostics {
		messages = append(messages, d.Message)
	}
	if !slices.Contains(messages, "The workbook already has numbered match markers; pass --renumber to overwrite them.") {
		t.Errorf("diagnostics = %q", messages)
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output stat err = %v, want not exist", err)
	}

	stdout, _, err = runCLI(t, []string{"number-matches", "--workbook", env.workbookPath, "--renumber", "--dry-run", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("number-matches --renumber: %v", err)
	}
	renumbered := decodePrepare(t, stdout)
	want := []string{"C3: RANKING MATCH #1", "C5: RANKING MATCH #2"}
	if renumbered.Cells != 2 || len(renumbered.Updates) != 1 || !reflect.DeepEqual(renumbered.Updates[0].Updates, want) {
		t.Errorf("renumber result = %+v", renumbered)
	}
}

func TestNumberMatchesScheduleMismatch(t *testing.T) {
	env := setupCLITestEnv(t)
	source := testsupport.PrepWorkbook(t)
	schedulePath := writePrepSchedule(t, env)

	_, _, err := runCLI(t, []string{"number-matches", "--workbook", source, "--schedule", schedulePath, "--field", "0"}, env.configPath)
	if !errors.Is(err, workbook.ErrScheduleMismatch) {
		t.Fatalf("err = %v, want ErrScheduleMismatch", err)
	}
}

func TestScriptCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	source := testsupport.PrepWorkbook(t)

	stdout, _, err := runCLI(t, []string{"script", "Video 12", "--workbook", source}, env.configPath)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	requireContains(t, stdout, "Video 12 · Korea (row 2)")
	requireContains(t, stdout, "Korea team script.")

	stdout, _, err = runCLI(t, []string{"script", "3", "--feature", "--workbook", source, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("script --feature: %v", err)
	}
	var row workbook.ScriptRow
	if err := json.Unmarshal([]byte(stdout), &row); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if row.Kind != workbook.ScriptFeature || row.Label != "Opening feature" || row.Script != "Feature script three." {
		t.Errorf("row = %+v", row)
	}

	if _, _, err := runCLI(t, []string{"script", "99", "--workbook", source}, env.configPath); err == nil {
		t.Error("expected an error for an unknown video number")
	}
}
