package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"teamreel/internal/config"
	"teamreel/internal/logging"
)

func boolPtr(v bool) *bool { return &v }

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("config logger ready")

	if got := readLog(t, filepath.Join(cfg.Paths.LogDir, "teamreel.log")); !strings.Contains(got, "config logger ready") {
		t.Fatalf("log file missing message: %q", got)
	}
}

func TestConsoleLoggerHeaderAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{
		Format:      "console",
		Level:       "info",
		OutputPaths: []string{logPath},
		Color:       boolPtr(false),
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "assign")
	component.Info("slot assigned",
		logging.String(logging.FieldSheet, "Day 1"),
		logging.Int(logging.FieldMatch, 12),
		logging.String(logging.FieldCode, "KOR"),
	)

	content := readLog(t, logPath)
	if !strings.Contains(content, "INFO [assign] Day 1 · Match #12 – slot assigned") {
		t.Fatalf("unexpected header: %q", content)
	}
	if !strings.Contains(content, "    - code: KOR") {
		t.Fatalf("missing field line: %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if strings.Contains(content, "\x1b[") {
		t.Fatalf("expected no colour codes: %q", content)
	}
}

func TestConsoleLoggerHidesExtraInfoFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	var attrs []any
	for _, key := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		attrs = append(attrs, logging.String(key, key))
	}
	logger.Info("many fields", attrs...)
	if content := readLog(t, logPath); !strings.Contains(content, "+ 2 more fields hidden") {
		t.Fatalf("expected hidden field summary: %q", content)
	}
}

func TestDebugIncludesCaller(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("with caller")
	if content := readLog(t, logPath); !strings.Contains(content, "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestJSONLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("filtered out")
	logging.WarnWithContext(logger, "duplicate video required", "duplicate_video", logging.String(logging.FieldCode, "KOR"))

	lines := strings.Split(strings.TrimSpace(readLog(t, logPath)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %d: %q", len(lines), lines)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record["level"] != "warn" || record["msg"] != "duplicate video required" {
		t.Fatalf("unexpected record: %v", record)
	}
	for _, key := range []string{"ts", logging.FieldEventType, logging.FieldErrorHint, logging.FieldImpact, logging.FieldCode} {
		if _, ok := record[key]; !ok {
			t.Errorf("record missing %q: %v", key, record)
		}
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("discarded")
	if logging.NewComponentLogger(nil, "x") == nil {
		t.Fatal("NewComponentLogger(nil) returned nil")
	}
}
