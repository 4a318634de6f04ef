// Package workbook reads and updates the event workbook, a local .xlsx file.
//
// One sheet (by default "Videos") is the video catalog: a header row with
// Team and Value columns and optional video id, time and match columns,
// with the video number one column left of Team and the duration two
// columns right of it. The same sheet carries the interview booth table in
// two configurable columns. Every other sheet is a run-of-show grid scanned
// for placeholder rows. Apply writes assignments back into the grid and
// records match numbers against the catalog rows; Save persists the file
// while holding an exclusive lock next to it.
package workbook
