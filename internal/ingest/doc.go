// Package ingest projects the raw source datasets into the canonical catalog
// tables.
//
// The reference side is a wide CSV of player attributes; only a fixed subset
// of columns is kept and absent optional columns default to empty. The query
// side is a directory of match-event JSON (competitions, per-competition
// match files, per-match lineups) from which starting lineups are extracted.
// Per-record problems skip the record; only a missing dataset or an unusable
// schema aborts an ingest.
package ingest
