package schedule

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoMatches is returned when a schedule document has no match list.
var ErrNoMatches = errors.New("schedule has no matches")

// LoadFile reads a JSON schedule. See Load for the accepted layouts.
func LoadFile(path string, field int) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	defer f.Close()
	records, err := Load(f, field)
	if err != nil {
		return nil, fmt.Errorf("load schedule %s: %w", path, err)
	}
	return records, nil
}

// Load decodes a schedule that is either a top-level array of match objects
// or an object with a "matches" array. When field is positive only matches
// on that field are kept; matches without a field value are always kept.
func Load(r io.Reader, field int) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNoMatches
	}

	var raw []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode schedule: %w", err)
		}
	} else {
		var doc struct {
			Matches []json.RawMessage `json:"matches"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode schedule: %w", err)
		}
		if doc.Matches == nil {
			return nil, ErrNoMatches
		}
		raw = doc.Matches
	}

	records := make([]Record, 0, len(raw))
	for _, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(item))
		dec.UseNumber()
		var m Match
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode match: %w", err)
		}
		if field > 0 {
			if f, ok := m.Field(); ok && f != field {
				continue
			}
		}
		records = append(records, m)
	}
	return records, nil
}
