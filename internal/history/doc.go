// Package history provides the persistence layer for analyzed tracks.
//
// Each analysis is stored exactly once per composite id; re-analyzing a
// track replaces the prior record atomically. No versioning of past
// states is kept.
package history
