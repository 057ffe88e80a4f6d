// Package models defines the domain entities for the crossfade track
// analysis service.
//
// [TrackAnalysis] is the durable, cross-platform record unifying one
// track's known URLs across platforms. It is created from a single
// source platform fetch and enriched as matches resolve elsewhere.
// Transient per-platform fetch results live in the clients package and
// never reach persistence directly.
package models
