package country

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	flagPattern          = regexp.MustCompile(`^\s*[\x{1F1E6}-\x{1F1FF}]{2}`)
	leadingNoisePattern  = regexp.MustCompile(`(?i)^(?:(?:first\s+global|fgc)\s+)?(?:team|delegation)\b[\s:-]*`)
	leadingOfPattern     = regexp.MustCompile(`(?i)^of\b[\s:-]*`)
	trailingNoisePattern = regexp.MustCompile(`(?i)[\s:-]*(?:team|delegation)\b$`)
)

const noiseCutset = " -–—,:"

// StripFlag removes a leading regional-indicator flag pair and surrounding
// whitespace.
func StripFlag(text string) string {
	loc := flagPattern.FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[loc[1]:])
}

// HasFlag reports whether text starts with a flag marker.
func HasFlag(text string) bool {
	return flagPattern.MatchString(text)
}

// stripNoise drops "Team"/"Delegation" style framing around a country name.
func stripNoise(name string) string {
	value := strings.TrimSpace(name)
	if value == "" {
		return value
	}
	for {
		cleaned := leadingNoisePattern.ReplaceAllString(value, "")
		if cleaned == value {
			break
		}
		value = strings.Trim(cleaned, noiseCutset)
	}
	value = strings.Trim(leadingOfPattern.ReplaceAllString(value, ""), noiseCutset)
	value = strings.Trim(trailingNoisePattern.ReplaceAllString(value, ""), noiseCutset)
	return value
}

// CleanLabel returns the display form of a delegation label: flag marker and
// noise words removed, original spelling otherwise kept.
func CleanLabel(text string) string {
	return stripNoise(StripFlag(text))
}

var diacriticFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldKey reduces text to lower-case ASCII letters and digits with combining
// marks removed. It is the key space of the alias table.
func foldKey(text string) string {
	folded, _, err := transform.String(diacriticFolder, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)
	var b strings.Builder
	b.Grow(len(folded))
	for i := 0; i < len(folded); i++ {
		c := folded[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FoldKey exposes the alias-table key normalisation without noise removal.
func FoldKey(text string) string {
	return foldKey(StripFlag(text))
}

// LookupKey is the full normalisation applied before an alias lookup.
func LookupKey(text string) string {
	return foldKey(CleanLabel(text))
}
