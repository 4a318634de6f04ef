package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"teamreel/internal/country"
)

// Entry is one available promotional video. Entries are created once per
// ingestion pass and never mutated afterwards.
type Entry struct {
	// Label is the raw team cell text, flag marker included.
	Label string
	// TeamName is Label with the flag marker and noise words removed.
	TeamName string
	// NormalizedName is the alias-table key for Label.
	NormalizedName string
	// Identity is the resolved delegation, empty when resolution failed.
	Identity country.Code
	// Value is the optimisation weight (cost/duration proxy); nil when the
	// source row had no numeric value.
	Value *float64

	VideoID         string
	Time            string
	VideoNumber     string
	VideoNumberText string
	Duration        string
	// Row is the zero-based source row position.
	Row int
	// Matches lists match numbers already recorded against the video.
	Matches []int
}

// Cost returns the optimisation weight and whether one is known.
func (e *Entry) Cost() (float64, bool) {
	if e == nil || e.Value == nil {
		return 0, false
	}
	return *e.Value, true
}

var titleCaser = cases.Title(language.English)

// DisplayName is the label written into the run-of-show: the canonical
// country name when the identity is known, otherwise the cleaned team name.
func (e *Entry) DisplayName() string {
	if e == nil {
		return ""
	}
	if name := country.DisplayName(e.Identity); name != "" {
		return name
	}
	name := strings.TrimSpace(e.TeamName)
	if name == "" {
		name = country.StripFlag(e.Label)
	}
	if name != "" && strings.ToLower(name) == name {
		return titleCaser.String(name)
	}
	if name == "" {
		return string(e.Identity)
	}
	return name
}

// Float returns a pointer to v, for building entries with a known value.
func Float(v float64) *float64 {
	return &v
}
