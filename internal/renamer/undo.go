package renamer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"subrename/internal/fsutil"
	"subrename/internal/history"
	"subrename/internal/logging"
)

// UndoStatus describes the outcome for one journal entry.
type UndoStatus string

const (
	UndoRestored UndoStatus = "restored"
	UndoAlready  UndoStatus = "already reverted"
	UndoMissing  UndoStatus = "missing"
	UndoConflict UndoStatus = "conflict"
)

// UndoResult is the outcome for one journaled rename.
type UndoResult struct {
	Entry  history.Entry
	Status UndoStatus
}

// UndoReport summarizes an undo.
type UndoReport struct {
	RunID   string
	Results []UndoResult
}

// Count returns how many entries ended with status.
func (r *UndoReport) Count(status UndoStatus) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Undo restores the original subtitle names of a run, newest rename first.
// An empty runID selects the latest run with renames no earlier undo has
// reverted or skipped. Entries that cannot be restored are journaled as
// skipped; naming the run explicitly retries them.
func (r *Renamer) Undo(ctx context.Context, runID string) (*UndoReport, error) {
	if r.journal == nil {
		return nil, errors.New("undo requires the rename history to be enabled")
	}

	runID = strings.TrimSpace(runID)
	if runID == "" {
		run, err := r.journal.LatestRun(ctx)
		if err != nil {
			return nil, err
		}
		runID = run.ID
	}

	entries, err := r.journal.Entries(ctx, runID)
	if err != nil {
		return nil, err
	}

	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)
	report := &UndoReport{RunID: runID}

	for i := len(entries) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		entry := entries[i]
		result := UndoResult{Entry: entry}
		attrs := logging.RenameAttrs(entry.Signature, entry.TargetPath, entry.SourcePath)

		switch {
		case entry.Reverted():
			result.Status = UndoAlready
		case !r.exists(entry.TargetPath):
			result.Status = UndoMissing
			logging.WarnWithContext(logger, "renamed subtitle no longer present", "undo_missing", attrs...)
		default:
			err := r.rename(entry.TargetPath, entry.SourcePath, false)
			switch {
			case errors.Is(err, fsutil.ErrTargetExists):
				result.Status = UndoConflict
				logging.WarnWithContext(logger, "original subtitle name is taken", "undo_conflict", attrs...)
			case err != nil:
				return report, &RenameError{Phase: "undo", From: entry.TargetPath, To: entry.SourcePath, Err: err}
			default:
				result.Status = UndoRestored
				if err := r.journal.MarkReverted(ctx, entry.ID, r.now()); err != nil {
					return report, fmt.Errorf("journal undo of %s: %w", entry.TargetPath, err)
				}
				logger.Info("restored subtitle name", logging.Args(attrs...)...)
			}
		}
		if result.Status == UndoMissing || result.Status == UndoConflict {
			// Skipped entries stop a bare undo from reselecting this run.
			if err := r.journal.MarkSkipped(ctx, entry.ID, string(result.Status), r.now()); err != nil {
				return report, fmt.Errorf("journal skipped undo of %s: %w", entry.TargetPath, err)
			}
		}
		report.Results = append(report.Results, result)
	}
	return report, nil
}
