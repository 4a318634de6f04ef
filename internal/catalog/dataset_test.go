package catalog

import (
	"testing"

	"teamreel/internal/country"
)

func sampleDataset() *Dataset {
	return New(Source{Sheet: "Videos", TeamColumn: 1, VideoNumberColumn: 0, DurationColumn: 3, MatchColumn: -1}, []Entry{
		{Label: "🇰🇷 Team Korea", Value: Float(45), VideoNumber: "1", Row: 1},
		{Label: "Mexico (MEX)", Value: Float(60), VideoNumber: "2", Row: 2},
		{Label: "Squad USA", Value: Float(30), VideoNumber: "3", Row: 3},
		{Label: "Trinidad and Tobago", Value: Float(50), VideoNumber: "4", Row: 4},
		{Label: "Mystery Squad", VideoNumber: "5", Row: 5},
		{Label: "Korea Delegation", Value: Float(10), VideoNumber: "6", Row: 6},
		{Label: "Canada", Value: Float(20), VideoNumber: "7", Row: 7},
	})
}

func TestNewResolvesIdentities(t *testing.T) {
	d := sampleDataset()
	want := []country.Code{"KOR", "MEX", "USA", "TTO", "", "KOR", "CAN"}
	entries := d.Entries()
	if len(entries) != len(want) {
		t.Fatalf("Entries() len = %d, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Identity != want[i] {
			t.Errorf("entry %d (%q) identity = %q, want %q", i, e.Label, e.Identity, want[i])
		}
	}
	if entries[0].TeamName != "Korea" {
		t.Errorf("TeamName = %q, want Korea", entries[0].TeamName)
	}
}

func TestFirstEntryWinsDuplicateIdentity(t *testing.T) {
	d := sampleDataset()
	e, ok := d.ByIdentity("KOR")
	if !ok {
		t.Fatal("ByIdentity(KOR) missing")
	}
	if e.VideoNumber != "1" {
		t.Errorf("ByIdentity(KOR) = video %s, want 1", e.VideoNumber)
	}
	e, ok = d.ByName("korea")
	if !ok || e.VideoNumber != "1" {
		t.Errorf("ByName(korea) = %+v, %v; want video 1", e, ok)
	}
}

func TestEntryCost(t *testing.T) {
	d := sampleDataset()
	entries := d.Entries()
	if v, ok := entries[0].Cost(); !ok || v != 45 {
		t.Errorf("Cost() = %v, %v; want 45, true", v, ok)
	}
	if _, ok := entries[4].Cost(); ok {
		t.Error("entry without a value reported a cost")
	}
	var nilEntry *Entry
	if _, ok := nilEntry.Cost(); ok {
		t.Error("nil entry reported a cost")
	}
}

func TestFindForCode(t *testing.T) {
	d := New(Source{}, []Entry{
		{Label: "Korea", Identity: "PRK"},
		{Label: "Squad GBR", Identity: "XKX"},
		{Label: "Peru"},
	})

	tests := []struct {
		code  country.Code
		label string
		ok    bool
	}{
		{"PER", "Peru", true},
		{"per", "Peru", true},
		{"KOR", "Korea", true},
		{"GBR", "Squad GBR", true},
		{"JPN", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			e, ok := d.FindForCode(tt.code)
			if ok != tt.ok {
				t.Fatalf("FindForCode(%q) ok = %v, want %v", tt.code, ok, tt.ok)
			}
			if ok && e.Label != tt.label {
				t.Errorf("FindForCode(%q) = %q, want %q", tt.code, e.Label, tt.label)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		entry Entry
		want  string
	}{
		{Entry{Label: "🇰🇷 Team Korea", Identity: "KOR"}, "Republic of Korea"},
		{Entry{Label: "mystery squad", TeamName: "mystery squad"}, "Mystery Squad"},
		{Entry{Label: "RoboCats", TeamName: "RoboCats"}, "RoboCats"},
	}
	for _, tt := range tests {
		if got := tt.entry.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.entry.Label, got, tt.want)
		}
	}
}

func TestSearch(t *testing.T) {
	d := sampleDataset()

	got := d.Search("mex", 0)
	if len(got) == 0 || got[0].Identity != "MEX" {
		t.Fatalf("Search(mex) = %v, want Mexico first", labels(got))
	}

	got = d.Search("Canada", 0)
	if len(got) != 1 || got[0].Identity != "CAN" {
		t.Errorf("Search(Canada) = %v, want [Canada]", labels(got))
	}

	if got := d.Search("squad", 1); len(got) != 1 {
		t.Errorf("Search(squad, 1) returned %d entries", len(got))
	}
	if got := d.Search("  ", 0); got != nil {
		t.Errorf("Search(blank) = %v, want nil", labels(got))
	}
}

func TestNilDataset(t *testing.T) {
	var d *Dataset
	if d.Len() != 0 || d.Entries() != nil {
		t.Error("nil dataset should be empty")
	}
	if _, ok := d.FindForCode("KOR"); ok {
		t.Error("nil dataset found an entry")
	}
}

func labels(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}
