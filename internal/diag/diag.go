package diag

import (
	"context"
	"fmt"
	"log/slog"
)

// Kind classifies a diagnostic so callers can filter or count anomalies
// without parsing message text.
type Kind string

const (
	KindInfo               Kind = "info"
	KindUnresolvedIdentity Kind = "unresolved_identity"
	KindMissingVideo       Kind = "missing_video"
	KindMissingValue       Kind = "missing_value"
	KindSupplyShortfall    Kind = "supply_shortfall"
	KindDuplicateReuse     Kind = "duplicate_reuse"
	KindDegenerateInput    Kind = "degenerate_input"
	KindMissingMatchNumber Kind = "missing_match_number"
	KindMissingCountries   Kind = "missing_countries"
	KindOrphanPlaceholder  Kind = "orphan_placeholder"
	KindUnassignable       Kind = "unassignable"
)

// Severity is the level a diagnostic is reported at.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarn
)

func (s Severity) String() string {
	if s == SeverityWarn {
		return "warn"
	}
	return "info"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "warn", "warning":
		*s = SeverityWarn
	case "info", "":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Entry is a single diagnostic. Match is zero when the entry is not tied to
// a scheduled match.
type Entry struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Match    int      `json:"match,omitempty"`
	Message  string   `json:"message"`
}

func (e Entry) String() string {
	return e.Message
}

// List is an ordered diagnostics log. Order is insertion order and is part
// of the deterministic output of every producer.
type List []Entry

// Infof appends an informational entry.
func (l *List) Infof(kind Kind, match int, format string, args ...any) {
	l.add(kind, SeverityInfo, match, format, args...)
}

// Warnf appends a warning entry.
func (l *List) Warnf(kind Kind, match int, format string, args ...any) {
	l.add(kind, SeverityWarn, match, format, args...)
}

func (l *List) add(kind Kind, severity Severity, match int, format string, args ...any) {
	*l = append(*l, Entry{
		Kind:     kind,
		Severity: severity,
		Match:    match,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Extend appends other in order.
func (l *List) Extend(other List) {
	*l = append(*l, other...)
}

// Strings returns the messages in order.
func (l List) Strings() []string {
	out := make([]string, 0, len(l))
	for _, entry := range l {
		out = append(out, entry.Message)
	}
	return out
}

// OfKind returns the entries with the given kind, preserving order.
func (l List) OfKind(kind Kind) List {
	var out List
	for _, entry := range l {
		if entry.Kind == kind {
			out = append(out, entry)
		}
	}
	return out
}

// Warnings returns the warning entries, preserving order.
func (l List) Warnings() List {
	var out List
	for _, entry := range l {
		if entry.Severity == SeverityWarn {
			out = append(out, entry)
		}
	}
	return out
}

// Log emits every entry through logger at its severity.
func (l List) Log(ctx context.Context, logger *slog.Logger) {
	if logger == nil {
		return
	}
	for _, entry := range l {
		level := slog.LevelInfo
		if entry.Severity == SeverityWarn {
			level = slog.LevelWarn
		}
		attrs := []slog.Attr{slog.String("kind", string(entry.Kind))}
		if entry.Match > 0 {
			attrs = append(attrs, slog.Int("match", entry.Match))
		}
		logger.LogAttrs(ctx, level, entry.Message, attrs...)
	}
}
