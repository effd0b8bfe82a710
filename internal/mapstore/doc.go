// Package mapstore owns the accumulated mapping result: the append-only
// accepted table and the mutable review table, persisted as CSV with fixed
// column order so downstream joins can key on column names across passes.
//
// A store is loaded fully into memory, mutated by exactly one pass, and
// written back atomically. A file lock held for the whole read-modify-write
// cycle keeps concurrent passes from losing updates; a crash before Save
// leaves the previous on-disk state untouched.
package mapstore
