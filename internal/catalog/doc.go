// Package catalog holds the indexed collection of available team videos.
//
// A Dataset is built once per run from workbook rows. Each entry's identity
// is resolved at ingestion, and lookups go through FindForCode, which tries
// the identity index, the delegation's known names and finally a literal
// code scan of the team names.
package catalog
