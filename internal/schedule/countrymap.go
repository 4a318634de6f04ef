package schedule

import (
	"log/slog"
	"sort"
	"strings"

	"teamreel/internal/country"
	"teamreel/internal/diag"
	"teamreel/internal/logging"
)

// CountryMap maps a match number to the country tokens eligible for the
// slots before that match.
type CountryMap map[int][]string

// MatchNumbers returns the mapped match numbers in ascending order.
func (m CountryMap) MatchNumbers() []int {
	numbers := make([]int, 0, len(m))
	for n := range m {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// BuildCountryMap resolves the eligible countries of every record. Records
// without a match number or without any recognisable country are diagnosed
// and left out of the map. When two records share a match number the later
// one wins.
func BuildCountryMap(records []Record, logger *slog.Logger) (CountryMap, diag.List) {
	logger = logging.NewComponentLogger(logger, "schedule")
	mapping := make(CountryMap, len(records))
	var diags diag.List

	for _, record := range records {
		if record == nil {
			continue
		}
		number, ok := record.MatchNumber()
		if !ok {
			diags.Warnf(diag.KindMissingMatchNumber, 0,
				"Schedule entry missing match number. Details: %s.", record.Describe())
			continue
		}

		found := record.Countries()
		display := make([]string, 0, len(found.Codes))
		for _, code := range found.Codes {
			if name := country.DisplayName(code); name != "" {
				display = append(display, name)
			} else {
				display = append(display, "(unrecognized "+string(code)+")")
			}
		}
		logger.Debug("schedule match countries",
			logging.Int(logging.FieldMatch, number),
			logging.String("raw", bracketed(found.Raw)),
			logging.String("codes", "["+country.Join(found.Codes)+"]"),
			logging.String("display", bracketed(display)),
		)

		if len(found.Codes) == 0 {
			diags.Warnf(diag.KindMissingCountries, number,
				"No country entries found for match #%d. Details: %s.", number, record.Describe())
			continue
		}
		codes := make([]string, len(found.Codes))
		for i, code := range found.Codes {
			codes[i] = string(code)
		}
		mapping[number] = codes
	}
	return mapping, diags
}

func bracketed(values []string) string {
	return "[" + strings.Join(values, ", ") + "]"
}
