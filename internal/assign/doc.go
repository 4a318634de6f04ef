// Package assign chooses which delegation video plays in each run-of-show
// placeholder.
//
// Each slot's eligible delegations come from the schedule; only those with
// a catalog video carrying a numeric value are candidates. The engine builds
// a slots x identities cost matrix (video value plus a tiny placeholder
// index term for deterministic ties), pads it with duplicate-trigger
// columns when supply is short, and solves it with the Hungarian algorithm.
// Rows the solver could not give a fresh identity fall back to the least
// used, cheapest candidate, and every reuse is reported as a warning.
//
// Data problems never surface as errors; they are returned as diagnostics
// alongside a reduced assignment.
package assign
