package country

import (
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Code is an ISO-3166 alpha-3 delegation code such as "KOR". The empty Code
// means the identity could not be resolved.
type Code string

func (c Code) String() string { return string(c) }

type entry struct {
	alpha3 string // ISO 3166-1 alpha-3
	alpha2 string // ISO 3166-1 alpha-2
	name   string // canonical display name
}

// supplementalAliases lists common spellings that the canonical names and
// their generated variants do not cover.
var supplementalAliases = map[string][]string{
	"ARE": {"UAE", "United Arab Emirates"},
	"BOL": {"Bolivia"},
	"BRN": {"Brunei"},
	"CIV": {"Ivory Coast", "Cote d'Ivoire"},
	"COD": {"DR Congo", "Democratic Republic of Congo", "Congo DR"},
	"COG": {"Republic of the Congo", "Congo"},
	"CPV": {"Cape Verde"},
	"CZE": {"Czech Republic"},
	"FSM": {"Micronesia"},
	"GBR": {"United Kingdom", "Great Britain", "UK"},
	"IRN": {"Iran"},
	"KOR": {"South Korea", "Republic of Korea", "Korea"},
	"LAO": {"Laos"},
	"MAC": {"Macau"},
	"MDA": {"Moldova"},
	"MKD": {"Macedonia", "North Macedonia"},
	"MMR": {"Burma", "Myanmar"},
	"NLD": {"Holland", "The Netherlands"},
	"PRK": {"North Korea"},
	"RUS": {"Russia"},
	"SRB": {"Serbia"},
	"SWZ": {"Swaziland"},
	"SYR": {"Syria"},
	"TJK": {"Tadjikistan"},
	"TLS": {"East Timor"},
	"TTO": {"Trinidad & Tobago", "Trinidad and Tobago"},
	"TUR": {"Türkiye", "Republic of Türkiye"},
	"TWN": {"Taiwan", "Chinese Taipei"},
	"TZA": {"Tanzania"},
	"UKR": {"Ukraine"},
	"USA": {"United States", "USA", "United States of America"},
	"VAT": {"Vatican", "Holy See"},
	"VEN": {"Venezuela"},
	"VNM": {"Vietnam"},
	"XKX": {"Kosovo"},
}

type keywordRule struct {
	keyword string
	code    Code
}

// keywordRules are substring fallbacks tried in order after an exact alias
// miss. Hong Kong, Macao and Taipei precede "china" so labels such as
// "Hong Kong, China" keep their own identity.
var keywordRules = []keywordRule{
	{"hongkong", "HKG"},
	{"macao", "MAC"},
	{"macau", "MAC"},
	{"taipei", "TWN"},
	{"palestin", "PSE"},
	{"moldov", "MDA"},
	{"micrones", "FSM"},
	{"iran", "IRN"},
	{"china", "CHN"},
	{"turkiye", "TUR"},
}

var parentheticalPattern = regexp.MustCompile(`\s*\(.*?\)`)

// Registry is the immutable identity enumeration plus its alias table.
// It is safe for concurrent use.
type Registry struct {
	ordered  []Code
	byAlpha3 map[Code]*entry
	alpha2   map[string]Code
	aliases  map[string]Code
}

var defaultRegistry = sync.OnceValue(newRegistry)

// Default returns the process-wide registry, building it on first use.
func Default() *Registry {
	return defaultRegistry()
}

func newRegistry() *Registry {
	r := &Registry{
		ordered:  make([]Code, 0, len(countries)),
		byAlpha3: make(map[Code]*entry, len(countries)),
		alpha2:   make(map[string]Code, len(countries)),
		aliases:  make(map[string]Code, len(countries)*6),
	}
	for i := range countries {
		e := &countries[i]
		code := Code(e.alpha3)
		r.ordered = append(r.ordered, code)
		r.byAlpha3[code] = e
		if len(e.alpha2) == 2 {
			if _, ok := r.alpha2[e.alpha2]; !ok {
				r.alpha2[e.alpha2] = code
			}
		}

		spellings := nameVariants(e.name)
		spellings = append(spellings, supplementalAliases[e.alpha3]...)
		spellings = append(spellings, e.alpha3, e.alpha2)
		for _, spelling := range spellings {
			key := foldKey(spelling)
			if key == "" {
				continue
			}
			if _, taken := r.aliases[key]; !taken {
				r.aliases[key] = code
			}
		}
	}
	return r
}

// nameVariants expands a canonical name into the spellings schedules and
// catalogs commonly use: without parenthetical qualifiers, comma-form names
// reordered, and "and" written as "&".
func nameVariants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	variants := []string{name, strings.ReplaceAll(name, "’", "'")}

	if strings.Contains(name, "(") && strings.Contains(name, ")") {
		if bare := strings.TrimSpace(parentheticalPattern.ReplaceAllString(name, "")); bare != "" {
			variants = append(variants, bare)
		}
	}

	if strings.Contains(name, ",") {
		var parts []string
		for _, part := range strings.Split(name, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) == 2 {
			variants = append(variants, parts[1]+" "+parts[0])
		}
		variants = append(variants, parts...)
	}

	if strings.Contains(strings.ToLower(name), " and ") {
		variants = append(variants, strings.ReplaceAll(name, " and ", " & "))
	}
	return variants
}

// Codes returns every known code in enumeration order.
func (r *Registry) Codes() []Code {
	return slices.Clone(r.ordered)
}

// Known reports whether code is part of the enumeration.
func (r *Registry) Known(code Code) bool {
	_, ok := r.byAlpha3[code]
	return ok
}

// DisplayName returns the canonical name for code, or "" when unknown.
func (r *Registry) DisplayName(code Code) string {
	if e, ok := r.byAlpha3[Code(strings.ToUpper(string(code)))]; ok {
		return e.name
	}
	return ""
}

// Alpha2 returns the two-letter counterpart of code, or "" when unknown.
func (r *Registry) Alpha2(code Code) string {
	if e, ok := r.byAlpha3[Code(strings.ToUpper(string(code)))]; ok {
		return e.alpha2
	}
	return ""
}

// Names returns the canonical display name followed by the supplemental
// aliases for code.
func (r *Registry) Names(code Code) []string {
	code = Code(strings.ToUpper(string(code)))
	e, ok := r.byAlpha3[code]
	if !ok {
		return nil
	}
	names := []string{e.name}
	return append(names, supplementalAliases[e.alpha3]...)
}

// NormalizeCode resolves an already structured alpha-2 or alpha-3 code
// without running the free-text pipeline.
func (r *Registry) NormalizeCode(value string) (Code, bool) {
	candidate := strings.ToUpper(strings.TrimSpace(value))
	if !isASCIIUpper(candidate) {
		return "", false
	}
	switch len(candidate) {
	case 3:
		if r.Known(Code(candidate)) {
			return Code(candidate), true
		}
	case 2:
		if code, ok := r.alpha2[candidate]; ok {
			return code, true
		}
	}
	return "", false
}

// Normalize resolves free delegation text (flag markers, noise words,
// diacritics, aliases) to a code.
func (r *Registry) Normalize(text string) (Code, bool) {
	key := LookupKey(text)
	if key == "" {
		return "", false
	}
	if code, ok := r.aliases[key]; ok {
		return code, true
	}
	for _, rule := range keywordRules {
		if strings.Contains(key, rule.keyword) {
			return rule.code, true
		}
	}
	return "", false
}

// LookupAlias is an exact alias-table lookup for an already folded key.
func (r *Registry) LookupAlias(key string) (Code, bool) {
	code, ok := r.aliases[key]
	return code, ok
}

func isASCIIUpper(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
