package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"teamreel/internal/config"
	"teamreel/internal/testsupport"
)

type cliTestEnv struct {
	cfg          *config.Config
	configPath   string
	workbookPath string
	schedulePath string
	baseDir      string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t)
	configPath := filepath.Join(homeDir, ".config", "teamreel", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	schedulePath := filepath.Join(base, "schedule.json")
	if err := os.WriteFile(schedulePath, []byte(testsupport.ScheduleJSON), 0o644); err != nil {
		t.Fatalf("write schedule: %v", err)
	}

	return &cliTestEnv{
		cfg:          cfg,
		configPath:   configPath,
		workbookPath: testsupport.EventWorkbook(t),
		schedulePath: schedulePath,
		baseDir:      base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	writeTestConfigWithLogging(t, path, cfg, "console", "error")
}

func writeTestConfigWithLogging(t *testing.T, path string, cfg *config.Config, format, level string) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nstate_dir = %q\nlog_dir = %q\n\n[logging]\nformat = %q\nlevel = %q\n\n[history]\nenabled = true\n",
		cfg.Paths.StateDir,
		cfg.Paths.LogDir,
		format,
		level,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
