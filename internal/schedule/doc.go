// Package schedule turns imported match schedules into a map from match
// number to eligible delegations.
//
// Schedule payloads differ between events, so records are walked
// generically: the match number is read from a list of known keys and
// country codes are collected from nested lists and objects up to a fixed
// depth.
package schedule
