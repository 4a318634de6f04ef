package assign

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"teamreel/internal/catalog"
	"teamreel/internal/country"
	"teamreel/internal/diag"
	"teamreel/internal/logging"
	"teamreel/internal/schedule"
	"teamreel/internal/slots"
)

const (
	// forbiddenCost marks a slot/identity pairing that is not allowed.
	forbiddenCost = 1e12
	// duplicateTriggerCost is charged for padding columns. It is worse than
	// any real video and better than a forbidden pairing.
	duplicateTriggerCost = 1e11
	// indexEpsilon scales the placeholder index into a tie-break term.
	indexEpsilon = 1e-6
)

// Assignment binds one slot to a delegation and its video.
type Assignment struct {
	Slot     slots.Slot
	Identity country.Code
	Video    *catalog.Entry
	// Duplicate is set when the video was already used by an earlier slot.
	Duplicate bool
}

// Result is the outcome of one assignment run. Assignments follow slot
// order; slots without any candidate are absent and explained in
// Diagnostics.
type Result struct {
	Assignments []Assignment
	Diagnostics diag.List
	// Slots is the number of slots offered to the engine.
	Slots int
}

// Engine computes slot assignments. It holds no state between runs.
type Engine struct {
	logger *slog.Logger
}

// NewEngine returns an engine logging through logger (nil discards).
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logging.NewComponentLogger(logger, "assign")}
}

// Assign runs the engine with a discarding logger.
func Assign(slotList []slots.Slot, countries schedule.CountryMap, dataset *catalog.Dataset) Result {
	return NewEngine(nil).Assign(slotList, countries, dataset)
}

type candidate struct {
	code  country.Code
	entry *catalog.Entry
	value float64
}

type slotCandidates struct {
	slot       slots.Slot
	candidates []candidate
}

func (s slotCandidates) has(code country.Code) (candidate, bool) {
	for _, c := range s.candidates {
		if c.code == code {
			return c, true
		}
	}
	return candidate{}, false
}

type matchKey struct {
	sheet string
	match int
}

// Assign computes the minimum total value assignment of videos to slots,
// using each video at most once while supply allows and reusing videos,
// with a warning, when it does not.
func (e *Engine) Assign(slotList []slots.Slot, countries schedule.CountryMap, dataset *catalog.Dataset) Result {
	ordered := make([]slots.Slot, len(slotList))
	copy(ordered, slotList)
	slots.Sort(ordered)

	result := Result{Slots: len(ordered)}
	rows := e.filterCandidates(ordered, countries, dataset, &result.Diagnostics)
	if len(rows) == 0 {
		result.Diagnostics.Warnf(diag.KindDegenerateInput, 0,
			"No placeholders reached assignment (%d slot(s) scanned).", len(ordered))
		return result
	}

	e.logCandidates(rows)

	columns := uniqueCodes(rows)
	if len(columns) < len(rows) {
		result.Diagnostics.Warnf(diag.KindSupplyShortfall, 0,
			"%d placeholders reached assignment, but only %d unique country videos were available.",
			len(rows), len(columns))
		result.Diagnostics.Warnf(diag.KindSupplyShortfall, 0,
			"Fewer unique country videos are available than placeholders; duplicates may be required.")
	}

	cost := buildCostMatrix(rows, columns)
	if len(cost) == 0 || len(cost[0]) == 0 {
		result.Diagnostics.Warnf(diag.KindDegenerateInput, 0, "Assignment matrix is empty.")
		return result
	}
	solution := hungarian(cost)
	if solution == nil {
		result.Diagnostics.Warnf(diag.KindDegenerateInput, 0,
			"Unable to compute assignments because there are fewer available countries than placeholders.")
		return result
	}

	result.Assignments = e.extract(rows, columns, cost, solution, &result.Diagnostics)
	return result
}

// filterCandidates resolves, per slot, the schedule countries that have a
// video with a known value.
func (e *Engine) filterCandidates(ordered []slots.Slot, countries schedule.CountryMap, dataset *catalog.Dataset, diags *diag.List) []slotCandidates {
	var rows []slotCandidates
	logged := map[matchKey]bool{}
	unresolvedLogged := map[matchKey]bool{}
	missingLogged := map[matchKey]bool{}
	missingValueLogged := map[matchKey]bool{}

	for _, slot := range ordered {
		tokens := countries[slot.Match]
		if len(tokens) == 0 {
			diags.Warnf(diag.KindMissingCountries, slot.Match,
				"Match #%d on sheet %s is missing country data in the imported schedule.", slot.Match, slot.Sheet)
			continue
		}
		key := matchKey{slot.Sheet, slot.Match}

		var codes []country.Code
		seen := map[country.Code]bool{}
		unresolved := map[string]bool{}
		for _, token := range tokens {
			code, ok := country.NormalizeCode(token)
			if !ok {
				label := strings.TrimSpace(token)
				if label == "" {
					label = "(blank)"
				}
				unresolved[label] = true
				continue
			}
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
		if len(unresolved) > 0 && !unresolvedLogged[key] {
			unresolvedLogged[key] = true
			diags.Warnf(diag.KindUnresolvedIdentity, slot.Match,
				"Unrecognized country codes in schedule for match #%d: %s.", slot.Match, strings.Join(sortedKeys(unresolved), ", "))
		}
		if len(codes) == 0 {
			diags.Warnf(diag.KindUnassignable, slot.Match,
				"Match #%d on sheet %s has country entries, but none could be normalized.", slot.Match, slot.Sheet)
			continue
		}
		if !logged[key] {
			logged[key] = true
			diags.Infof(diag.KindInfo, slot.Match,
				"Match #%d schedule countries: %s", slot.Match, country.FormatCodes(codes))
		}

		var valid []candidate
		var missing, missingValue []country.Code
		for _, code := range codes {
			entry, ok := dataset.FindForCode(code)
			if !ok {
				missing = append(missing, code)
				continue
			}
			value, ok := entry.Cost()
			if !ok {
				missingValue = append(missingValue, code)
				continue
			}
			valid = append(valid, candidate{code: code, entry: entry, value: value})
		}

		if len(missing) > 0 && !missingLogged[key] {
			missingLogged[key] = true
			diags.Warnf(diag.KindMissingVideo, slot.Match,
				"No videos found for countries %s in match #%d.", country.FormatCodes(sortedCodes(missing)), slot.Match)
		}
		if len(missingValue) > 0 && !missingValueLogged[key] {
			missingValueLogged[key] = true
			diags.Warnf(diag.KindMissingValue, slot.Match,
				"Countries %s in match #%d lack value scores and were ignored.", country.FormatCodes(sortedCodes(missingValue)), slot.Match)
		}
		if len(valid) == 0 {
			diags.Warnf(diag.KindUnassignable, slot.Match,
				"Match #%d on sheet %s has no assignable countries with videos.", slot.Match, slot.Sheet)
			continue
		}
		rows = append(rows, slotCandidates{slot: slot, candidates: valid})
	}
	return rows
}

func (e *Engine) logCandidates(rows []slotCandidates) {
	for _, row := range rows {
		codes := make([]country.Code, len(row.candidates))
		for i, c := range row.candidates {
			codes[i] = c.code
		}
		e.logger.Debug("slot candidates",
			logging.String(logging.FieldSheet, row.slot.Sheet),
			logging.Int(logging.FieldMatch, row.slot.Match),
			logging.Int("placeholder_index", row.slot.Index),
			logging.String("candidates", country.Join(sortedCodes(codes))),
		)
	}
}

// uniqueCodes returns the distinct candidate identities in code order.
func uniqueCodes(rows []slotCandidates) []country.Code {
	seen := map[country.Code]bool{}
	var out []country.Code
	for _, row := range rows {
		for _, c := range row.candidates {
			if !seen[c.code] {
				seen[c.code] = true
				out = append(out, c.code)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// buildCostMatrix lays out one row per slot and one column per identity,
// padded with duplicate-trigger columns until there are at least as many
// columns as rows.
func buildCostMatrix(rows []slotCandidates, columns []country.Code) [][]float64 {
	width := max(len(columns), len(rows))
	cost := make([][]float64, len(rows))
	for i, row := range rows {
		tie := float64(row.slot.Index) * indexEpsilon
		cost[i] = make([]float64, width)
		for j := range width {
			if j >= len(columns) {
				cost[i][j] = duplicateTriggerCost + tie
				continue
			}
			if c, ok := row.has(columns[j]); ok {
				cost[i][j] = c.value + tie
			} else {
				cost[i][j] = forbiddenCost
			}
		}
	}
	return cost
}

// extract accepts the solver's pairings that use a real, unused identity
// and sends every other row through the duplicate fallback.
func (e *Engine) extract(rows []slotCandidates, columns []country.Code, cost [][]float64, solution []int, diags *diag.List) []Assignment {
	results := make([]*Assignment, len(rows))
	uses := map[country.Code]int{}
	var unmatched []int

	for i, row := range rows {
		col := solution[i]
		if col < 0 || col >= len(cost[i]) {
			diags.Warnf(diag.KindUnassignable, row.slot.Match,
				"No available country could be assigned to placeholder before match #%d on sheet %s.", row.slot.Match, row.slot.Sheet)
			unmatched = append(unmatched, i)
			continue
		}
		if cost[i][col] >= forbiddenCost {
			diags.Warnf(diag.KindUnassignable, row.slot.Match,
				"No valid assignment found for placeholder before match #%d on sheet %s.", row.slot.Match, row.slot.Sheet)
			unmatched = append(unmatched, i)
			continue
		}
		if col >= len(columns) {
			unmatched = append(unmatched, i)
			continue
		}
		code := columns[col]
		c, ok := row.has(code)
		if !ok || uses[code] > 0 {
			unmatched = append(unmatched, i)
			continue
		}
		uses[code]++
		results[i] = &Assignment{Slot: row.slot, Identity: code, Video: c.entry}
	}

	for _, i := range unmatched {
		row := rows[i]
		if len(row.candidates) == 0 {
			diags.Warnf(diag.KindUnassignable, row.slot.Match,
				"Unable to assign any video to placeholder before match #%d on sheet %s, even after allowing duplicates.", row.slot.Match, row.slot.Sheet)
			continue
		}
		best := pickFallback(row.candidates, uses)
		prior := uses[best.code]
		uses[best.code]++
		if prior > 0 {
			diags.Warnf(diag.KindDuplicateReuse, row.slot.Match,
				"Duplicate assignment: country %s reused for match #%d.", best.code, row.slot.Match)
		}
		results[i] = &Assignment{Slot: row.slot, Identity: best.code, Video: best.entry, Duplicate: prior > 0}
	}

	out := make([]Assignment, 0, len(rows))
	matchesByCode := map[country.Code][]int{}
	for _, a := range results {
		if a == nil {
			continue
		}
		out = append(out, *a)
		matchesByCode[a.Identity] = append(matchesByCode[a.Identity], a.Slot.Match)
	}
	e.warnDuplicates(matchesByCode)
	return out
}

// pickFallback prefers the least used identity, then the lowest value, then
// the smallest code.
func pickFallback(candidates []candidate, uses map[country.Code]int) candidate {
	sorted := make([]candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		ui, uj := uses[sorted[i].code], uses[sorted[j].code]
		if ui != uj {
			return ui < uj
		}
		if sorted[i].value != sorted[j].value {
			return sorted[i].value < sorted[j].value
		}
		return sorted[i].code < sorted[j].code
	})
	return sorted[0]
}

func (e *Engine) warnDuplicates(matchesByCode map[country.Code][]int) {
	codes := make([]country.Code, 0, len(matchesByCode))
	for code, matches := range matchesByCode {
		if len(matches) > 1 {
			codes = append(codes, code)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		logging.WarnWithContext(e.logger, "duplicate video required", "duplicate_video",
			logging.String(logging.FieldCode, string(code)),
			logging.String("matches", joinInts(uniqueSortedInts(matchesByCode[code]))),
			logging.String(logging.FieldImpact, "the same team video plays more than once"),
			logging.String(logging.FieldErrorHint, "add videos for more delegations or review the schedule"),
		)
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedCodes(codes []country.Code) []country.Code {
	seen := map[country.Code]bool{}
	out := make([]country.Code, 0, len(codes))
	for _, c := range codes {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func uniqueSortedInts(values []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
