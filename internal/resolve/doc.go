// Package resolve runs the identity-resolution passes over the catalog and
// mapping store: a quick blocking-plus-token-sort pass, an exhaustive
// full-fuzzy pass over the leftovers, and a position-corroboration pass that
// promotes borderline candidates. Passes are idempotent: re-running one
// against unchanged inputs leaves both mapping tables byte-identical.
package resolve
