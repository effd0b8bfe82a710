// Package refindex builds the in-memory blocking index over the reference
// dataset. Each record contributes one combined normalized string; an
// exact-match table answers whole-string lookups and a token posting index
// bounds fuzzy scoring to a small candidate subset per query.
//
// The index is rebuilt from scratch every run and is deterministic for a
// given input ordering: posting lists keep insertion order and candidate
// truncation is stable, so repeated runs classify identically.
package refindex
