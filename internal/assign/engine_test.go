package assign

import (
	"math"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"

	"teamreel/internal/catalog"
	"teamreel/internal/country"
	"teamreel/internal/diag"
	"teamreel/internal/logging"
	"teamreel/internal/schedule"
	"teamreel/internal/slots"
)

func slot(match, index int) slots.Slot {
	return slots.Slot{
		Location: slots.Location{Sheet: "Day 1", Row: match*10 + index, Column: 2, VideoNumberColumn: 1, DurationColumn: 0},
		Match:    match,
		Index:    index,
	}
}

func video(label string, value float64) catalog.Entry {
	return catalog.Entry{Label: label, Value: catalog.Float(value)}
}

func identities(assignments []Assignment) []country.Code {
	out := make([]country.Code, len(assignments))
	for i, a := range assignments {
		out[i] = a.Identity
	}
	return out
}

func TestGlobalOptimumForcesExpensiveChoice(t *testing.T) {
	dataset := catalog.New(catalog.Source{}, []catalog.Entry{
		video("Czechia", 5),
		video("🇰🇷 Team Korea", 3),
	})
	// Both slots precede match 12; the second only has KOR, so the first
	// must take the more expensive CZE.
	rows := []slotCandidates{
		{slot: slot(12, 0), candidates: []candidate{{code: "CZE", value: 5}, {code: "KOR", value: 3}}},
		{slot: slot(12, 1), candidates: []candidate{{code: "KOR", value: 3}}},
	}
	for _, row := range rows {
		for i := range row.candidates {
			row.candidates[i].entry, _ = dataset.FindForCode(row.candidates[i].code)
		}
	}
	columns := uniqueCodes(rows)
	cost := buildCostMatrix(rows, columns)
	var diags diag.List
	got := NewEngine(logging.NewNop()).extract(rows, columns, cost, hungarian(cost), &diags)

	if want := []country.Code{"CZE", "KOR"}; !reflect.DeepEqual(identities(got), want) {
		t.Fatalf("assignments = %v, want %v", identities(got), want)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags.Strings())
	}
}

func TestAssignScenarioThroughEngine(t *testing.T) {
	dataset := catalog.New(catalog.Source{}, []catalog.Entry{
		video("Czechia", 5),
		video("🇰🇷 Team Korea", 3),
		video("Peru", 1),
	})
	countries := schedule.CountryMap{12: {"CZE", "KOR"}, 13: {"KOR"}}
	result := Assign([]slots.Slot{slot(13, 0), slot(12, 0)}, countries, dataset)

	if want := []country.Code{"CZE", "KOR"}; !reflect.DeepEqual(identities(result.Assignments), want) {
		t.Fatalf("assignments = %v, want %v", identities(result.Assignments), want)
	}
	if result.Assignments[0].Slot.Match != 12 || result.Assignments[1].Slot.Match != 13 {
		t.Errorf("assignments not in slot order: %+v", result.Assignments)
	}
	if result.Assignments[1].Video.Label != "🇰🇷 Team Korea" {
		t.Errorf("KOR bound to %q", result.Assignments[1].Video.Label)
	}
	if len(result.Diagnostics.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %v", result.Diagnostics.Warnings().Strings())
	}
	if s := result.Summarize(); s != (Summary{Slots: 2, Assigned: 2}) {
		t.Errorf("Summarize() = %+v", s)
	}
}

func TestDuplicateFallbackOnShortfall(t *testing.T) {
	dataset := catalog.New(catalog.Source{}, []catalog.Entry{video("Korea", 4)})
	countries := schedule.CountryMap{1: {"KOR"}, 2: {"KR"}, 3: {"KOR"}}
	result := Assign([]slots.Slot{slot(1, 0), slot(2, 0), slot(3, 0)}, countries, dataset)

	if got := identities(result.Assignments); !reflect.DeepEqual(got, []country.Code{"KOR", "KOR", "KOR"}) {
		t.Fatalf("assignments = %v", got)
	}
	if result.Assignments[0].Duplicate || !result.Assignments[1].Duplicate || !result.Assignments[2].Duplicate {
		t.Errorf("duplicate flags = %v, %v, %v", result.Assignments[0].Duplicate, result.Assignments[1].Duplicate, result.Assignments[2].Duplicate)
	}

	reuse := result.Diagnostics.OfKind(diag.KindDuplicateReuse)
	if len(reuse) != 2 {
		t.Fatalf("duplicate diagnostics = %v, want 2", reuse.Strings())
	}
	for _, entry := range reuse {
		if !strings.Contains(entry.Message, "KOR") || entry.Severity != diag.SeverityWarn {
			t.Errorf("duplicate diagnostic = %+v", entry)
		}
	}
	if len(result.Diagnostics.OfKind(diag.KindSupplyShortfall)) == 0 {
		t.Error("expected a supply shortfall diagnostic")
	}
	if s := result.Summarize(); s.Duplicates != 2 || s.Assigned != 3 {
		t.Errorf("Summarize() = %+v", s)
	}
}

func TestDuplicateFallbackPrefersLeastUsedThenCheapest(t *testing.T) {
	dataset := catalog.New(catalog.Source{}, []catalog.Entry{video("Korea", 3), video("Japan", 1)})
	countries := schedule.CountryMap{1: {"KOR", "JPN"}, 2: {"KOR", "JPN"}, 3: {"KOR", "JPN"}, 4: {"KOR", "JPN"}}
	result := Assign([]slots.Slot{slot(1, 0), slot(2, 0), slot(3, 0), slot(4, 0)}, countries, dataset)

	want := []country.Code{"JPN", "KOR", "JPN", "KOR"}
	if got := identities(result.Assignments); !reflect.DeepEqual(got, want) {
		t.Fatalf("assignments = %v, want %v", got, want)
	}
	var flags []bool
	for _, a := range result.Assignments {
		flags = append(flags, a.Duplicate)
	}
	if want := []bool{false, false, true, true}; !reflect.DeepEqual(flags, want) {
		t.Errorf("duplicate flags = %v, want %v", flags, want)
	}
	if reuse := result.Diagnostics.OfKind(diag.KindDuplicateReuse); len(reuse) != 2 {
		t.Errorf("duplicate diagnostics = %v, want 2", reuse.Strings())
	}
}

func TestDuplicateFallbackTiesFollowSlotOrder(t *testing.T) {
	dataset := catalog.New(catalog.Source{}, []catalog.Entry{video("Korea", 2), video("Japan", 2)})
	japan, _ := dataset.FindForCode("JPN")
	korea, _ := dataset.FindForCode("KOR")
	both := func() []candidate {
		return []candidate{{code: "JPN", value: 2, entry: japan}, {code: "KOR", value: 2, entry: korea}}
	}
	rows := []slotCandidates{
		{slot: slot(1, 0), candidates: both()},
		{slot: slot(2, 0), candidates: both()},
		{slot: slot(3, 0), candidates: both()},
		{slot: slot(4, 0), candidates: both()},
	}
	columns := uniqueCodes(rows)
	cost := buildCostMatrix(rows, columns)
	// Rows 2 and 3 point at identities already taken, so both fall back and
	// tie on uses, value and code order; the earlier slot picks first.
	solution := []int{0, 1, 0, 1}

	var diags diag.List
	got := NewEngine(logging.NewNop()).extract(rows, columns, cost, solution, &diags)

	want := []country.Code{"JPN", "KOR", "JPN", "KOR"}
	if !reflect.DeepEqual(identities(got), want) {
		t.Fatalf("assignments = %v, want %v", identities(got), want)
	}
	if !got[2].Duplicate || !got[3].Duplicate || got[0].Duplicate || got[1].Duplicate {
		t.Errorf("duplicate flags wrong: %+v", got)
	}
}

func TestPickFallbackOrder(t *testing.T) {
	tests := []struct {
		name       string
		candidates []candidate
		uses       map[country.Code]int
		want       country.Code
	}{
		{
			name:       "fewest uses wins over value",
			candidates: []candidate{{code: "JPN", value: 1}, {code: "KOR", value: 9}},
			uses:       map[country.Code]int{"JPN": 2, "KOR": 1},
			want:       "KOR",
		},
		{
			name:       "lowest value breaks equal uses",
			candidates: []candidate{{code: "KOR", value: 3}, {code: "JPN", value: 1}},
			uses:       map[country.Code]int{"JPN": 1, "KOR": 1},
			want:       "JPN",
		},
		{
			name:       "code breaks equal uses and value",
			candidates: []candidate{{code: "PER", value: 2}, {code: "CZE", value: 2}, {code: "KOR", value: 2}},
			uses:       map[country.Code]int{},
			want:       "CZE",
		},
		{
			name:       "unused identity counts as zero",
			candidates: []candidate{{code: "CZE", value: 1}, {code: "MEX", value: 5}},
			uses:       map[country.Code]int{"CZE": 1},
			want:       "MEX",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pickFallback(tt.candidates, tt.uses).code; got != tt.want {
				t.Fatalf("pickFallback() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNoDuplicatesWhenSupplySuffices(t *testing.T) {
	dataset := catalog.New(catalog.Source{}, []catalog.Entry{
		video("Korea", 4), video("Japan", 2), video("Peru", 9),
	})
	countries := schedule.CountryMap{1: {"KOR", "JPN", "PER"}}
	result := Assign([]slots.Slot{slot(1, 0), slot(1, 1), slot(1, 2)}, countries, dataset)
	if len(result.Assignments) != 3 {
		t.Fatalf("assignments = %d, want 3", len(result.Assignments))
	}
	if got := result.Diagnostics.OfKind(diag.KindDuplicateReuse); len(got) != 0 {
		t.Errorf("unexpected duplicate diagnostics: %v", got.Strings())
	}
	seen := map[country.Code]bool{}
	for _, a := range result.Assignments {
		if seen[a.Identity] {
			t.Errorf("identity %s used twice", a.Identity)
		}
		seen[a.Identity] = true
	}
	for i, a := range result.Assignments {
		if a.Slot.Index != i {
			t.Errorf("assignment %d has placeholder index %d", i, a.Slot.Index)
		}
	}
}

func TestCandidateFilteringDiagnostics(t *testing.T) {
	dataset := catalog.New(catalog.Source{}, []catalog.Entry{
		video("Korea", 4),
		{Label: "Japan"},
	})
	countries := schedule.CountryMap{
		1: {"KOR", "JPN", "PER", "ZZZ", "ZZZ"},
		2: {"ZZZ"},
		3: {"PER"},
	}
	result := Assign([]slots.Slot{slot(1, 0), slot(1, 1), slot(2, 0), slot(3, 0), slot(4, 0)}, countries, dataset)

	if len(result.Assignments) != 2 {
		t.Fatalf("assignments = %v, want two KOR slots", identities(result.Assignments))
	}

	d := result.Diagnostics
	checks := []struct {
		kind  diag.Kind
		count int
		text  string
	}{
		{diag.KindUnresolvedIdentity, 2, "Unrecognized country codes in schedule for match #1: ZZZ."},
		{diag.KindMissingVideo, 2, "No videos found for countries PER (Peru) in match #1."},
		{diag.KindMissingValue, 1, "Countries JPN (Japan) in match #1 lack value scores and were ignored."},
		{diag.KindMissingCountries, 1, "Match #4 on sheet Day 1 is missing country data in the imported schedule."},
	}
	for _, c := range checks {
		got := d.OfKind(c.kind)
		if len(got) != c.count {
			t.Errorf("%s diagnostics = %v, want %d", c.kind, got.Strings(), c.count)
			continue
		}
		if got[0].Message != c.text {
			t.Errorf("%s message = %q, want %q", c.kind, got[0].Message, c.text)
		}
	}
	unassignable := d.OfKind(diag.KindUnassignable)
	if len(unassignable) != 2 {
		t.Errorf("unassignable diagnostics = %v, want 2", unassignable.Strings())
	}
	if s := result.Summarize(); s.Unassigned != 3 {
		t.Errorf("Summarize().Unassigned = %d, want 3", s.Unassigned)
	}
}

func TestDegenerateInput(t *testing.T) {
	result := Assign(nil, nil, catalog.New(catalog.Source{}, nil))
	if len(result.Assignments) != 0 {
		t.Fatalf("assignments = %v", result.Assignments)
	}
	if got := result.Diagnostics.OfKind(diag.KindDegenerateInput); len(got) != 1 {
		t.Errorf("degenerate diagnostics = %v", got.Strings())
	}
}

func TestAssignIsDeterministic(t *testing.T) {
	dataset := catalog.New(catalog.Source{}, []catalog.Entry{
		video("Korea", 3), video("Japan", 3), video("Peru", 3), video("Mexico", 3),
	})
	countries := schedule.CountryMap{
		1: {"KOR", "JPN", "PER", "MEX"},
		2: {"MEX", "PER", "JPN", "KOR"},
		3: {"JPN", "KOR"},
	}
	input := []slots.Slot{slot(1, 0), slot(1, 1), slot(2, 0), slot(3, 0), slot(3, 1), slot(3, 2)}
	first := Assign(input, countries, dataset)
	for range 20 {
		again := Assign(input, countries, dataset)
		if !reflect.DeepEqual(identities(again.Assignments), identities(first.Assignments)) {
			t.Fatalf("assignments changed: %v vs %v", identities(again.Assignments), identities(first.Assignments))
		}
		if !reflect.DeepEqual(again.Diagnostics.Strings(), first.Diagnostics.Strings()) {
			t.Fatalf("diagnostics changed: %v vs %v", again.Diagnostics.Strings(), first.Diagnostics.Strings())
		}
	}
}

func TestOptimalityAgainstBruteForce(t *testing.T) {
	codes := []country.Code{"BRA", "CAN", "JPN", "KOR", "MEX"}
	labels := map[country.Code]string{"BRA": "Brazil", "CAN": "Canada", "JPN": "Japan", "KOR": "Korea", "MEX": "Mexico"}

	for seed := uint64(1); seed <= 40; seed++ {
		r := rand.New(rand.NewPCG(seed, seed*7919))
		values := map[country.Code]float64{}
		var entries []catalog.Entry
		for i, p := range r.Perm(len(codes)) {
			code := codes[i]
			values[code] = float64(p+1) * 1.5
			entries = append(entries, video(labels[code], values[code]))
		}
		dataset := catalog.New(catalog.Source{}, entries)

		countries := schedule.CountryMap{}
		var input []slots.Slot
		eligible := make([][]country.Code, 4)
		for s := range 4 {
			for _, code := range codes {
				if r.IntN(2) == 0 {
					eligible[s] = append(eligible[s], code)
				}
			}
			if len(eligible[s]) == 0 {
				eligible[s] = []country.Code{codes[r.IntN(len(codes))]}
			}
			for _, code := range eligible[s] {
				countries[s+1] = append(countries[s+1], string(code))
			}
			input = append(input, slot(s+1, 0))
		}

		best, feasible := bruteForce(eligible, values)
		if !feasible {
			continue
		}
		result := Assign(input, countries, dataset)
		if len(result.Assignments) != 4 {
			t.Fatalf("seed %d: %d assignments", seed, len(result.Assignments))
		}
		total := 0.0
		used := map[country.Code]bool{}
		for i, a := range result.Assignments {
			if used[a.Identity] {
				t.Fatalf("seed %d: identity %s reused despite a feasible matching", seed, a.Identity)
			}
			used[a.Identity] = true
			if !contains(eligible[i], a.Identity) {
				t.Fatalf("seed %d: slot %d got ineligible %s", seed, i, a.Identity)
			}
			total += values[a.Identity]
		}
		if math.Abs(total-best) > 1e-9 {
			t.Errorf("seed %d: total %.2f, brute force %.2f", seed, total, best)
		}
	}
}

func bruteForce(eligible [][]country.Code, values map[country.Code]float64) (float64, bool) {
	best := math.Inf(1)
	used := map[country.Code]bool{}
	var walk func(row int, total float64)
	walk = func(row int, total float64) {
		if row == len(eligible) {
			best = min(best, total)
			return
		}
		for _, code := range eligible[row] {
			if used[code] {
				continue
			}
			used[code] = true
			walk(row+1, total+values[code])
			used[code] = false
		}
	}
	walk(0, 0)
	return best, !math.IsInf(best, 1)
}

func contains(codes []country.Code, code country.Code) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func TestHungarianRectangular(t *testing.T) {
	cost := [][]float64{
		{4, 1, 3, 9},
		{2, 0, 5, 9},
		{3, 2, 2, 9},
	}
	got := hungarian(cost)
	if want := []int{1, 0, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("hungarian() = %v, want %v", got, want)
	}
	if hungarian([][]float64{{1}, {2}}) != nil {
		t.Error("expected nil for more rows than columns")
	}
	if hungarian(nil) != nil {
		t.Error("expected nil for empty matrix")
	}
}
