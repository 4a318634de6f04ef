package catalog

import (
	"regexp"
	"strings"

	"teamreel/internal/country"
)

var (
	parenCodePattern = regexp.MustCompile(`\(([A-Z]{3})\)`)
	bareCodePattern  = regexp.MustCompile(`\b([A-Z]{3})\b`)
)

// Source records where a dataset was read from, for write-back. Column
// indexes are zero-based; -1 means the column is absent.
type Source struct {
	Sheet             string
	TeamColumn        int
	VideoNumberColumn int
	DurationColumn    int
	MatchColumn       int
}

// Dataset is the indexed video collection. It is read-only once built and
// safe to share.
type Dataset struct {
	Source Source

	entries []*Entry
	byCode  map[country.Code]*Entry
	byName  map[string]*Entry
}

// New indexes entries. Entries without an identity have one resolved from
// their label; on duplicate keys the first entry wins in both indexes.
func New(source Source, entries []Entry) *Dataset {
	d := &Dataset{
		Source:  source,
		entries: make([]*Entry, 0, len(entries)),
		byCode:  make(map[country.Code]*Entry, len(entries)),
		byName:  make(map[string]*Entry, len(entries)*2),
	}
	for i := range entries {
		e := entries[i]
		if e.TeamName == "" {
			e.TeamName = country.CleanLabel(e.Label)
			if e.TeamName == "" {
				e.TeamName = country.StripFlag(e.Label)
			}
		}
		if e.NormalizedName == "" {
			e.NormalizedName = country.LookupKey(e.Label)
		}
		if e.Identity == "" {
			e.Identity = ResolveIdentity(e.Label)
		}
		entry := &e
		d.entries = append(d.entries, entry)

		for _, key := range []string{entry.NormalizedName, country.FoldKey(entry.Label)} {
			if key == "" {
				continue
			}
			if _, taken := d.byName[key]; !taken {
				d.byName[key] = entry
			}
		}
		if entry.Identity != "" {
			if _, taken := d.byCode[entry.Identity]; !taken {
				d.byCode[entry.Identity] = entry
			}
		}
	}
	return d
}

// ResolveIdentity binds a catalog label to a code: a parenthetical code
// such as "(KOR)" first, then a bare upper-case code appearing as a whole
// word, then the full text pipeline.
func ResolveIdentity(label string) country.Code {
	if m := parenCodePattern.FindStringSubmatch(label); m != nil {
		if country.Known(country.Code(m[1])) {
			return country.Code(m[1])
		}
	}
	for _, m := range bareCodePattern.FindAllStringSubmatch(label, -1) {
		if country.Known(country.Code(m[1])) {
			return country.Code(m[1])
		}
	}
	if code, ok := country.Normalize(label); ok {
		return code
	}
	return ""
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns the entries in ingestion order.
func (d *Dataset) Entries() []*Entry {
	if d == nil {
		return nil
	}
	out := make([]*Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// ByIdentity returns the first entry bound to code.
func (d *Dataset) ByIdentity(code country.Code) (*Entry, bool) {
	if d == nil {
		return nil, false
	}
	e, ok := d.byCode[code]
	return e, ok
}

// ByName returns the first entry whose normalised label equals key.
func (d *Dataset) ByName(key string) (*Entry, bool) {
	if d == nil || key == "" {
		return nil, false
	}
	e, ok := d.byName[key]
	return e, ok
}

// FindForCode resolves the video for a delegation. It tries the identity
// index, then every known name of the delegation against the name index,
// then a whole-word scan for the literal code in team names. A miss means
// "no candidate", not an error.
func (d *Dataset) FindForCode(code country.Code) (*Entry, bool) {
	if d == nil {
		return nil, false
	}
	code = country.Code(strings.ToUpper(strings.TrimSpace(string(code))))
	if code == "" {
		return nil, false
	}
	if e, ok := d.byCode[code]; ok {
		return e, true
	}

	for _, name := range country.Names(code) {
		for _, key := range []string{country.LookupKey(name), country.FoldKey(name)} {
			if e, ok := d.ByName(key); ok {
				return e, true
			}
		}
	}

	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(string(code)) + `\b`)
	if err != nil {
		return nil, false
	}
	for _, e := range d.entries {
		if pattern.MatchString(strings.ToUpper(e.TeamName)) {
			return e, true
		}
	}
	return nil, false
}
