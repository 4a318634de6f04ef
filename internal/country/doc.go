// Package country resolves free-text delegation identifiers to ISO-3166
// alpha-3 codes.
//
// Labels arrive from independent sources: video catalog rows ("🇰🇷 Team
// Korea"), schedule country fields ("KR", "KOR"), and hand-typed interview
// booth tags. Normalize runs the full text pipeline (flag marker, noise
// words, diacritics, alias table, keyword rules); NormalizeCode accepts only
// structured two or three letter codes; BestFuzzyMatch is the last-resort
// similarity matcher for short labels that are not country names at all.
//
// The registry is built once on first use and never mutated afterwards, so
// every function here is safe to call from concurrent goroutines.
package country
