package renamer

import (
	"errors"
	"fmt"
)

// ErrCountMismatch is wrapped by CountMismatchError.
var ErrCountMismatch = errors.New("movie and subtitle counts differ")

// CountMismatchError reports a directory whose movie and subtitle totals differ.
type CountMismatchError struct {
	Movies    int
	Subtitles int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("total movie files are not the same as total subtitle files (movies: %d, subtitles: %d)", e.Movies, e.Subtitles)
}

func (e *CountMismatchError) Unwrap() error {
	return ErrCountMismatch
}

// RenameError describes a filesystem failure that aborted a run or an undo.
type RenameError struct {
	Phase string
	From  string
	To    string
	Err   error
}

func (e *RenameError) Error() string {
	return fmt.Sprintf("rename failed during %s (%s -> %s): %v", e.Phase, e.From, e.To, e.Err)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}
