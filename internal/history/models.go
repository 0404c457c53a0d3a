package history

import "time"

// Entry is one journaled rename.
type Entry struct {
	ID         int64
	RunID      string
	Directory  string
	SourcePath string
	TargetPath string
	MoviePath  string
	Signature  string
	RenamedAt  time.Time
	RevertedAt *time.Time
	// SkippedAt is set when an undo could not restore the entry. SkipReason
	// carries the outcome of that attempt ("missing", "conflict").
	SkippedAt  *time.Time
	SkipReason string
}

// Reverted reports whether the rename has been undone.
func (e Entry) Reverted() bool {
	return e.RevertedAt != nil
}

// Pending reports whether a bare undo should still try to restore the entry.
func (e Entry) Pending() bool {
	return e.RevertedAt == nil && e.SkippedAt == nil
}

// Run summarizes the entries recorded under one run ID.
type Run struct {
	ID        string
	Directory string
	StartedAt time.Time
	Renames   int
	Reverted  int
	// Skipped counts entries an undo gave up on and that are still not reverted.
	Skipped int
}

// Active reports whether the run still has renames no undo has dealt with.
func (r Run) Active() bool {
	return r.Renames > r.Reverted+r.Skipped
}
