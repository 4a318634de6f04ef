package workbook

import (
	"reflect"
	"testing"
)

func TestNormalizeVideoNumber(t *testing.T) {
	tests := map[string]string{
		"Video Nº 012": "12",
		"7":            "7",
		"000":          "0",
		"V2 take 030":  "30",
		"TBD":          "TBD",
	}
	for in, want := range tests {
		if got := normalizeVideoNumber(in); got != want {
			t.Errorf("normalizeVideoNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseMatchList(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"", nil},
		{"12", []int{12}},
		{"12, 14", []int{12, 14}},
		{"Match 3, 7 (replay, late)", []int{3, 7}},
		{"5, 5, 9", []int{5, 9}},
		{"tbd", nil},
	}
	for _, tt := range tests {
		if got := parseMatchList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseMatchList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	if v := parseValue("1,250.5"); v == nil || *v != 1250.5 {
		t.Errorf("parseValue(1,250.5) = %v", v)
	}
	if v := parseValue("n/a"); v != nil {
		t.Errorf("parseValue(n/a) = %v, want nil", *v)
	}
	if v := parseValue(""); v != nil {
		t.Errorf("parseValue(\"\") = %v, want nil", *v)
	}
	for _, text := range []string{"NaN", "nan", "Inf", "-Inf", "+infinity", "1e999"} {
		if v := parseValue(text); v != nil {
			t.Errorf("parseValue(%q) = %v, want nil", text, *v)
		}
	}
}

func TestMatchListSplitterBuilt(t *testing.T) {
	if matchListSplitter == nil {
		t.Fatal("match list splitter was not built")
	}
	parts, err := matchListSplitter.Split(`12, "14, 15", 16 (replay, 2)`)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(parts) != 3 {
		t.Fatalf("Split parts = %q, want 3", parts)
	}
}
