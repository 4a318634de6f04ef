package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "TEAMREEL_LOG_LEVEL"
	EnvLogFormat = "TEAMREEL_LOG_FORMAT"
	EnvStateDir  = "TEAMREEL_STATE_DIR"
)

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	if value, ok := os.LookupEnv(EnvLogFormat); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	if value, ok := os.LookupEnv(EnvStateDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = value
	}
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeWorkbook()
	if c.Matching.FuzzyThreshold == 0 {
		c.Matching.FuzzyThreshold = defaultFuzzyThreshold
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeWorkbook() {
	w := &c.Workbook
	fields := []struct {
		value    *string
		fallback string
	}{
		{&w.VideosSheet, defaultVideosSheet},
		{&w.TaskHeader, defaultTaskHeader},
		{&w.PlaceholderMarker, defaultPlaceholderMarker},
		{&w.MatchMarker, defaultMatchMarker},
		{&w.BoothKeyColumn, defaultBoothKeyColumn},
		{&w.BoothScriptColumn, defaultBoothScriptColumn},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			*f.value = f.fallback
		}
	}
	w.BoothKeyColumn = strings.ToUpper(w.BoothKeyColumn)
	w.BoothScriptColumn = strings.ToUpper(w.BoothScriptColumn)
}
