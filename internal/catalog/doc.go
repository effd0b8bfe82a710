// Package catalog persists the canonical dataset tables backed by SQLite.
//
// The ingest commands project raw reference and match-event sources into a
// uniform row schema here; the resolution passes read the tables back and
// record a pass_runs audit row per invocation. The catalog is rebuilt by
// re-running ingest; passes never mutate the canonical tables.
package catalog
