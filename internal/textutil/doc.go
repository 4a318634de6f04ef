// Package textutil provides string similarity and filename sanitisation
// helpers.
//
// SequenceRatio is the Ratcliff/Obershelp ratio (2*M/T over matching
// character blocks) used to pair hand-typed labels with their intended
// targets. SanitizeFileName keeps derived output paths filesystem safe.
package textutil
