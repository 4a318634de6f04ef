package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"teamreel/internal/country"
)

// Search returns entries whose team name contains the query as a fuzzy
// subsequence, closest first. An entry whose identity equals the query's
// resolved code always leads the result. limit <= 0 means no limit.
func (d *Dataset) Search(query string, limit int) []*Entry {
	query = strings.TrimSpace(query)
	if d == nil || query == "" {
		return nil
	}

	var out []*Entry
	seen := make(map[*Entry]bool)
	add := func(e *Entry) {
		if e == nil || seen[e] {
			return
		}
		seen[e] = true
		out = append(out, e)
	}

	if code, ok := country.Normalize(query); ok {
		if e, found := d.FindForCode(code); found {
			add(e)
		}
	} else if code, ok := country.NormalizeCode(query); ok {
		if e, found := d.FindForCode(code); found {
			add(e)
		}
	}

	targets := make([]string, len(d.entries))
	for i, e := range d.entries {
		targets[i] = e.TeamName
	}
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	sort.Stable(ranks)
	for _, r := range ranks {
		add(d.entries[r.OriginalIndex])
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
