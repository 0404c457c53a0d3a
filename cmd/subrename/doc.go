// Package main hosts the subrename CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds the logger, the
// rename journal, and the run lock, and hands the work to internal/renamer.
// Output meant for people (tables, summaries) goes to the command's stdout;
// structured logs go to stderr and the log file.
package main
