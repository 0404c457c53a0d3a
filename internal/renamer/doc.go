// Package renamer pairs subtitle files with movie files in one directory by
// their season/episode signature and renames each subtitle to its movie's base
// name.
//
// A run scans the directory, refuses to proceed when movie and subtitle counts
// differ (unless told to ignore it), plans one action per movie, and then
// executes the plan. Every executed rename is journaled so Undo can restore the
// original names. Planning is pure; only Run and Undo touch the filesystem.
package renamer
