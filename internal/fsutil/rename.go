package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrTargetExists is returned when the destination of a rename already exists
// and overwriting was not requested.
var ErrTargetExists = errors.New("target already exists")

// Rename moves src to dst. Unless overwrite is set, an existing dst is left in
// place and ErrTargetExists is returned.
func Rename(src, dst string, overwrite bool) error {
	if overwrite {
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("rename %s: %w", src, err)
		}
		return nil
	}
	if err := renameNoReplace(src, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("rename %s -> %s: %w", src, dst, ErrTargetExists)
		}
		return fmt.Errorf("rename %s: %w", src, err)
	}
	return nil
}

// Exists reports whether path names an existing file (symlinks are not followed).
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// checkedRename refuses to replace an existing dst. It is racy across
// processes and only used where the kernel cannot enforce the check.
func checkedRename(src, dst string) error {
	exists, err := Exists(dst)
	if err != nil {
		return err
	}
	if exists {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	return os.Rename(src, dst)
}
