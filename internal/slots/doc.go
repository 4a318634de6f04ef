// Package slots enumerates the team video placeholders of a run-of-show.
package slots
