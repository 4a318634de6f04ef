// Package diag defines the diagnostics log shared by the catalog, schedule,
// slot scanner, and assignment engine.
//
// Data-quality problems (unresolvable countries, videos without a value,
// fewer unique videos than slots) are never returned as errors. Producers
// append an Entry describing the anomaly and continue with a reduced result;
// the CLI prints the log and mirrors it to the structured logger.
package diag
