// Package logging assembles the structured slog loggers used by every
// playerlink command.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes typed attr helpers plus a no-op logger for tests and
// wiring code that cannot fail. Prefer these constructors over hand-rolled
// slog setup so all passes emit log lines with the same shape.
package logging
