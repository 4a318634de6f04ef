package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// HeaderKey folds a sheet header for alias comparison: NFKC, whitespace
// runs collapsed to one space, trimmed and upper-cased.
func HeaderKey(text string) string {
	return strings.ToUpper(strings.Join(strings.Fields(norm.NFKC.String(text)), " "))
}

// HeaderSet builds a lookup set of folded header aliases.
func HeaderSet(aliases ...string) map[string]bool {
	set := make(map[string]bool, len(aliases))
	for _, alias := range aliases {
		set[HeaderKey(alias)] = true
	}
	return set
}
