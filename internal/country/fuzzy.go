package country

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"teamreel/internal/textutil"
)

// DefaultFuzzyThreshold is the minimum similarity ratio BestFuzzyMatch
// accepts for a non-exact label.
const DefaultFuzzyThreshold = 0.70

var boothKeySeparator = regexp.MustCompile(`[^A-Z0-9]+`)

// BoothKey normalises a hand-typed short label: NFKC, upper-case, and every
// run of non-alphanumerics collapsed to one space.
func BoothKey(text string) string {
	normalized := strings.ToUpper(norm.NFKC.String(text))
	normalized = boothKeySeparator.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// BestFuzzyMatch returns the candidate whose key matches label. An exact
// BoothKey match wins outright; otherwise the candidate with the highest
// similarity ratio is returned when it reaches threshold. Earlier candidates
// win ties. A threshold <= 0 selects DefaultFuzzyThreshold.
func BestFuzzyMatch[T any](label string, candidates []T, key func(T) string, threshold float64) (T, bool) {
	var zero T
	query := BoothKey(label)
	if query == "" || len(candidates) == 0 {
		return zero, false
	}
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}

	keys := make([]string, len(candidates))
	for i, candidate := range candidates {
		keys[i] = BoothKey(key(candidate))
		if keys[i] == query {
			return candidate, true
		}
	}

	best := -1
	bestScore := 0.0
	for i, k := range keys {
		if k == "" {
			continue
		}
		score := textutil.SequenceRatio(query, k)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best >= 0 && bestScore >= threshold {
		return candidates[best], true
	}
	return zero, false
}
