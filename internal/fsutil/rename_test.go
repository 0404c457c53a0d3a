package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRenameMovesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.srt")
	dst := filepath.Join(dir, "b.srt")
	writeFile(t, src, "sub")

	if err := Rename(src, dst, false); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if ok, _ := Exists(src); ok {
		t.Fatal("source should be gone")
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "sub" {
		t.Fatalf("unexpected destination content %q (%v)", data, err)
	}
}

func TestRenameRefusesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.srt")
	dst := filepath.Join(dir, "b.srt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	err := Rename(src, dst, false)
	if !errors.Is(err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", err)
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "old" {
		t.Fatalf("destination was clobbered: %q", data)
	}
	if ok, _ := Exists(src); !ok {
		t.Fatal("source should remain after refused rename")
	}
}

func TestRenameOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.srt")
	dst := filepath.Join(dir, "b.srt")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	if err := Rename(src, dst, true); err != nil {
		t.Fatalf("Rename overwrite: %v", err)
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "new" {
		t.Fatalf("expected overwritten content, got %q", data)
	}
}

func TestRenameMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Rename(filepath.Join(dir, "missing.srt"), filepath.Join(dir, "b.srt"), false)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if errors.Is(err, ErrTargetExists) {
		t.Fatalf("missing source must not look like a conflict: %v", err)
	}
}
