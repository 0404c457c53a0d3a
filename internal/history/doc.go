// Package history persists a journal of subtitle renames in SQLite so runs can
// be listed and undone.
//
// Each rename run gets a UUID; every successful rename inside the run is
// stored as one entry with its source and target path. Undo walks a run's
// entries in reverse and marks each one reverted, or skipped when the renamed
// file is gone or its original name is taken. Skipped entries no longer keep
// a run selectable by a bare undo, but an undo naming the run retries them.
//
// The schema lives in migrations/NNN_name.sql and is tracked with SQLite's
// user_version pragma.
package history
