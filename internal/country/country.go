package country

import (
	"strings"
)

// Normalize resolves free delegation text to a code using the default
// registry. It never fails loudly; ok is false when nothing matched.
func Normalize(text string) (Code, bool) {
	return Default().Normalize(text)
}

// NormalizeCode resolves a structured alpha-2 or alpha-3 code using the
// default registry.
func NormalizeCode(value string) (Code, bool) {
	return Default().NormalizeCode(value)
}

// DisplayName returns the canonical name for code, or "" when unknown.
func DisplayName(code Code) string {
	return Default().DisplayName(code)
}

// Alpha2 returns the two-letter counterpart of code.
func Alpha2(code Code) string {
	return Default().Alpha2(code)
}

// Names returns the display name and supplemental aliases for code.
func Names(code Code) []string {
	return Default().Names(code)
}

// Known reports whether code is part of the enumeration.
func Known(code Code) bool {
	return Default().Known(Code(strings.ToUpper(string(code))))
}

// Flag renders the regional-indicator pair for code, or "" when the code
// has no two-letter counterpart.
func Flag(code Code) string {
	iso2 := Alpha2(code)
	if len(iso2) != 2 || !isASCIIUpper(iso2) {
		return ""
	}
	var b strings.Builder
	for i := 0; i < 2; i++ {
		b.WriteRune(rune(0x1F1E6 + int(iso2[i]-'A')))
	}
	return b.String()
}

// FormatCodes renders codes for diagnostics as "KOR (Republic of Korea),
// CZE (Czechia)". An empty input renders as "(none)".
func FormatCodes(codes []Code) string {
	if len(codes) == 0 {
		return "(none)"
	}
	formatted := make([]string, 0, len(codes))
	for _, code := range codes {
		normalized, ok := NormalizeCode(string(code))
		if !ok {
			normalized = Code(strings.ToUpper(strings.TrimSpace(string(code))))
		}
		if normalized == "" {
			continue
		}
		if display := DisplayName(normalized); display != "" {
			formatted = append(formatted, string(normalized)+" ("+display+")")
			continue
		}
		formatted = append(formatted, string(normalized))
	}
	if len(formatted) == 0 {
		return "(none)"
	}
	return strings.Join(formatted, ", ")
}

// Join renders codes as a comma separated list of bare codes.
func Join(codes []Code) string {
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = string(code)
	}
	return strings.Join(parts, ", ")
}
