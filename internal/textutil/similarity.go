package textutil

import "github.com/pmezard/go-difflib/difflib"

// SequenceRatio returns the Ratcliff/Obershelp similarity of a and b in
// [0, 1], compared character by character. Two empty strings score 1.
func SequenceRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	matcher := difflib.NewMatcher(splitChars(a), splitChars(b))
	return matcher.Ratio()
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
