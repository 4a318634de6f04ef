// Package logging assembles structured slog loggers for teamreel.
//
// It owns the console and JSON handlers, level and output plumbing, and the
// standard attribute keys (component, sheet, match, code) so engine
// diagnostics and CLI messages share one shape. The console handler prints
// a header line with the component and sheet/match subject, followed by the
// remaining attributes; JSON output is one object per record. NewNop gives
// tests and optional wiring a logger that discards everything.
package logging
