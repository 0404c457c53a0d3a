// Package logging assembles structured slog loggers and formatting helpers used
// across subrename.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so a rename run tags every line with
// its run ID. A no-op logger is provided for tests and wiring code that cannot
// fail.
package logging
