package schedule

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"teamreel/internal/country"
)

// Record is a schedule entry the map builder can work with. Any schedule
// source (JSON file, API payload, test fixture) can satisfy it.
type Record interface {
	// MatchNumber returns the match this record describes.
	MatchNumber() (int, bool)
	// Countries returns the delegation tokens found in the record.
	Countries() Countries
	// Describe summarises the record for diagnostics.
	Describe() string
}

// Countries holds the tokens found in one record: Raw keeps the original
// spelling of every accepted token, Codes the de-duplicated identities, both
// in first-seen order.
type Countries struct {
	Raw   []string
	Codes []country.Code
}

// maxWalkDepth bounds recursion into nested schedule payloads.
const maxWalkDepth = 6

var (
	matchNumberKeys = []string{"matchNumber", "match_number", "matchNumberDisplay", "matchnumber", "matchNo", "id"}
	matchKeyKeys    = []string{"matchKey", "match"}

	preferredCountryFields = []string{
		"countries",
		"countryCodes",
		"teams",
		"participants",
		"alliances",
		"blueAllianceTeams",
		"redAllianceTeams",
	}
	nestedCountryKeys = []string{"country", "countryCode", "country_code", "countrycode", "teamCountry"}

	digitRun = regexp.MustCompile(`\d+`)
)

// Match is a schedule record decoded from JSON into generic values.
type Match map[string]any

// MatchNumber tries the numeric id keys first, then composite keys such as
// "Q12", from which the last digit run is taken.
func (m Match) MatchNumber() (int, bool) {
	for _, key := range matchNumberKeys {
		if n, ok := coerceMatchNumber(m[key]); ok {
			return n, true
		}
	}
	for _, key := range matchKeyKeys {
		if n, ok := coerceMatchNumber(m[key]); ok {
			return n, true
		}
	}
	return 0, false
}

func coerceMatchNumber(value any) (int, bool) {
	switch v := value.(type) {
	case nil, bool:
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v), true
		}
		return 0, false
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		if f, err := v.Float64(); err == nil {
			return coerceMatchNumber(f)
		}
		return 0, false
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil && n >= 0 && !strings.HasPrefix(s, "+") {
			return n, true
		}
		runs := digitRun.FindAllString(s, -1)
		if len(runs) == 0 {
			return 0, false
		}
		n, err := strconv.Atoi(runs[len(runs)-1])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Countries walks the record for structured country codes. The well-known
// fields are searched first; when they yield nothing every list or object
// field is searched.
func (m Match) Countries() Countries {
	w := &countryWalk{rawSeen: map[string]bool{}, codeSeen: map[country.Code]bool{}}
	for _, key := range preferredCountryFields {
		if v, ok := m[key]; ok {
			w.visit(v, 0)
		}
	}
	if len(w.out.Codes) == 0 {
		for _, key := range sortedKeys(m) {
			switch m[key].(type) {
			case []any, map[string]any, Match:
				w.visit(m[key], 0)
			}
		}
	}
	return w.out
}

type countryWalk struct {
	out      Countries
	rawSeen  map[string]bool
	codeSeen map[country.Code]bool
}

func (w *countryWalk) visit(value any, depth int) {
	if depth > maxWalkDepth {
		return
	}
	switch v := value.(type) {
	case string:
		code, ok := country.NormalizeCode(v)
		if !ok {
			return
		}
		if raw := strings.TrimSpace(v); raw != "" && !w.rawSeen[raw] {
			w.rawSeen[raw] = true
			w.out.Raw = append(w.out.Raw, raw)
		}
		if !w.codeSeen[code] {
			w.codeSeen[code] = true
			w.out.Codes = append(w.out.Codes, code)
		}
	case []any:
		for _, item := range v {
			w.visit(item, depth+1)
		}
	case []string:
		for _, item := range v {
			w.visit(item, depth+1)
		}
	case Match:
		w.visitObject(v, depth)
	case map[string]any:
		w.visitObject(v, depth)
	}
}

func (w *countryWalk) visitObject(obj map[string]any, depth int) {
	for _, key := range nestedCountryKeys {
		if v, ok := obj[key]; ok {
			w.visit(v, depth+1)
		}
	}
	for _, key := range sortedKeys(obj) {
		switch obj[key].(type) {
		case []any, []string, map[string]any, Match:
			w.visit(obj[key], depth+1)
		}
	}
}

// Describe renders the identifying fields of the record, or its key list
// when none are present.
func (m Match) Describe() string {
	var details []string
	for _, label := range []string{"matchKey", "description", "name", "id"} {
		if s, ok := formatDetail(m[label]); ok {
			details = append(details, label+"="+s)
			break
		}
	}
	if s, ok := formatDetail(m["scheduledTime"]); ok {
		details = append(details, "scheduledTime="+s)
	}
	if s, ok := formatDetail(m["field"]); ok {
		details = append(details, "field="+s)
	}
	if len(details) > 0 {
		return strings.Join(details, ", ")
	}
	if keys := sortedKeys(m); len(keys) > 0 {
		return "available keys: " + strings.Join(keys, ", ")
	}
	return "no additional details available"
}

func formatDetail(value any) (string, bool) {
	switch v := value.(type) {
	case nil, bool:
		return "", false
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	}
	return "", false
}

// Field returns the record's field number, if it has one.
func (m Match) Field() (int, bool) {
	switch v := m["field"].(type) {
	case nil, bool:
		return 0, false
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return coerceMatchNumber(v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String implements fmt.Stringer for log output.
func (c Countries) String() string {
	return fmt.Sprintf("raw=[%s] codes=[%s]", strings.Join(c.Raw, ", "), country.Join(c.Codes))
}
