package renamer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"subrename/internal/history"
	"subrename/internal/logging"
	"subrename/internal/media"
	"subrename/internal/testsupport"
)

func TestUndoRestoresLatestRun(t *testing.T) {
	f := newFixture(t, "Show.S01E01.mkv", "Show.S01E02.mkv", "a.s01e01.srt", "b.s01e02.srt")
	ctx := context.Background()

	run, err := f.renamer.Run(ctx, f.dir, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	report, err := f.renamer.Undo(ctx, "")
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if report.RunID != run.RunID {
		t.Fatalf("undo picked run %q, want %q", report.RunID, run.RunID)
	}
	if report.Count(UndoRestored) != 2 {
		t.Fatalf("expected 2 restored, got %+v", report.Results)
	}
	// Newest rename is undone first.
	if report.Results[0].Entry.SourcePath != filepath.Join(f.dir, "b.s01e02.srt") {
		t.Fatalf("unexpected undo order: %+v", report.Results)
	}

	want := []string{"Show.S01E01.mkv", "Show.S01E02.mkv", "a.s01e01.srt", "b.s01e02.srt"}
	if got := f.names(t); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected directory contents after undo: %v", got)
	}

	if _, err := f.renamer.Undo(ctx, ""); !errors.Is(err, history.ErrNoRuns) {
		t.Fatalf("expected ErrNoRuns once everything is reverted, got %v", err)
	}

	again, err := f.renamer.Undo(ctx, run.RunID)
	if err != nil {
		t.Fatalf("Undo by id: %v", err)
	}
	if again.Count(UndoAlready) != 2 {
		t.Fatalf("expected entries reported as already reverted, got %+v", again.Results)
	}
}

func TestUndoMissingAndConflict(t *testing.T) {
	f := newFixture(t, "Show.S01E01.mkv", "Show.S01E02.mkv", "a.s01e01.srt", "b.s01e02.srt")
	ctx := context.Background()

	run, err := f.renamer.Run(ctx, f.dir, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if err := os.Remove(filepath.Join(f.dir, "Show.S01E01.srt")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	testsupport.TouchFiles(t, f.dir, "b.s01e02.srt")

	report, err := f.renamer.Undo(ctx, run.RunID)
	if err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if report.Count(UndoMissing) != 1 || report.Count(UndoConflict) != 1 {
		t.Fatalf("expected one missing and one conflict, got %+v", report.Results)
	}
	if _, err := os.Stat(filepath.Join(f.dir, "Show.S01E02.srt")); err != nil {
		t.Fatalf("conflicting rename should stay in place: %v", err)
	}

	entries, err := f.store.Entries(ctx, run.RunID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	reasons := []string{entries[0].SkipReason, entries[1].SkipReason}
	if !reflect.DeepEqual(reasons, []string{string(UndoMissing), string(UndoConflict)}) {
		t.Fatalf("unexpected skip reasons: %v", reasons)
	}
	if _, err := f.store.LatestRun(ctx); !errors.Is(err, history.ErrNoRuns) {
		t.Fatalf("run with only skipped entries should not be selectable, got %v", err)
	}
}

func TestBareUndoAdvancesPastUnrestorableRun(t *testing.T) {
	f := newFixture(t, "Show.S01E01.mkv", "a.s01e01.srt")
	ctx := context.Background()

	older, err := f.renamer.Run(ctx, f.dir, Options{})
	if err != nil {
		t.Fatalf("Run older: %v", err)
	}

	newerDir := filepath.Join(testsupport.BaseDir(f.cfg), "season2")
	if err := os.MkdirAll(newerDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.TouchFiles(t, newerDir, "Show.S02E01.mkv", "b.s02e01.srt")
	newer, err := f.renamer.Run(ctx, newerDir, Options{})
	if err != nil {
		t.Fatalf("Run newer: %v", err)
	}
	if err := os.Remove(filepath.Join(newerDir, "Show.S02E01.srt")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	first, err := f.renamer.Undo(ctx, "")
	if err != nil {
		t.Fatalf("first Undo: %v", err)
	}
	if first.RunID != newer.RunID || first.Count(UndoMissing) != 1 {
		t.Fatalf("first undo should hit the newer run and find it missing, got %+v", first)
	}

	second, err := f.renamer.Undo(ctx, "")
	if err != nil {
		t.Fatalf("second Undo: %v", err)
	}
	if second.RunID != older.RunID || second.Count(UndoRestored) != 1 {
		t.Fatalf("second undo should move on to the older run, got %+v", second)
	}
	if got := f.names(t); !reflect.DeepEqual(got, []string{"Show.S01E01.mkv", "a.s01e01.srt"}) {
		t.Fatalf("older run not restored: %v", got)
	}

	// Naming the run retries entries an earlier undo skipped.
	testsupport.TouchFiles(t, newerDir, "Show.S02E01.srt")
	retry, err := f.renamer.Undo(ctx, newer.RunID)
	if err != nil {
		t.Fatalf("Undo by id: %v", err)
	}
	if retry.Count(UndoRestored) != 1 {
		t.Fatalf("expected skipped entry to be restored on retry, got %+v", retry.Results)
	}
	if _, err := os.Stat(filepath.Join(newerDir, "b.s02e01.srt")); err != nil {
		t.Fatalf("expected original name back: %v", err)
	}
}

func TestUndoWithoutJournal(t *testing.T) {
	classifier, err := media.NewClassifier([]string{"mkv"}, []string{"srt"})
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	r := New(classifier, nil, logging.NewNop())
	if _, err := r.Undo(context.Background(), ""); err == nil {
		t.Fatal("expected error without journal")
	}
}
