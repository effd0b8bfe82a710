// Package nameutil normalizes free-text player names into comparison keys.
//
// Normalization lowercases, strips diacritics, removes apostrophes, quotes,
// and periods, and collapses whitespace. The result is deterministic and
// idempotent, which makes it safe to use as a lookup key across passes.
package nameutil
