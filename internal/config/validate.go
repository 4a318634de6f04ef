package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateWorkbook(); err != nil {
		return err
	}
	if c.Schedule.Field < 0 {
		return errors.New("schedule.field must be 0 (all fields) or a positive field number")
	}
	if c.Matching.FuzzyThreshold <= 0 || c.Matching.FuzzyThreshold > 1 {
		return errors.New("matching.fuzzy_threshold must be greater than 0 and at most 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateWorkbook() error {
	columns := []struct{ name, value string }{
		{"workbook.booth_key_column", c.Workbook.BoothKeyColumn},
		{"workbook.booth_script_column", c.Workbook.BoothScriptColumn},
	}
	for _, column := range columns {
		if !isColumnName(column.value) {
			return fmt.Errorf("%s must be a column letter such as Q, got %q", column.name, column.value)
		}
	}
	if c.Workbook.BoothKeyColumn == c.Workbook.BoothScriptColumn {
		return errors.New("workbook.booth_key_column and workbook.booth_script_column must differ")
	}
	return nil
}

func isColumnName(s string) bool {
	if s == "" || len(s) > 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
