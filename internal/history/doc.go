// Package history records optimisation runs in a SQLite database.
//
// Every non-dry-run optimize invocation stores one run row (identifier,
// timestamp, input paths, outcome counts and diagnostics) plus one row per
// filled placeholder. The CLI reads them back with List and Show.
package history
