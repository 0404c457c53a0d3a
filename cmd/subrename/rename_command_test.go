package main

import (
	"errors"
	"slices"
	"testing"

	"subrename/internal/renamer"
	"subrename/internal/testsupport"
)

func TestRenameCommandRenamesAndUndoRestores(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.TouchFiles(t, env.episodes,
		"Show.S01E01.mkv", "Show.S01E02.mkv",
		"show.s01e02.en.srt", "show.s01e01.en.srt",
	)

	out, _, err := runCLI(t, []string{"rename", env.episodes}, env.configPath)
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	requireContains(t, out, "S01E01")
	requireContains(t, out, "Show.S01E02.srt")
	requireContains(t, out, "2 of 2 subtitles")

	want := []string{"Show.S01E01.mkv", "Show.S01E01.srt", "Show.S01E02.mkv", "Show.S01E02.srt"}
	if got := testsupport.ListNames(t, env.episodes); !slices.Equal(got, want) {
		t.Fatalf("after rename = %v, want %v", got, want)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, env.episodes)

	out, _, err = runCLI(t, []string{"undo"}, env.configPath)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	requireContains(t, out, "2 of 2 renames")

	want = []string{"Show.S01E01.mkv", "Show.S01E02.mkv", "show.s01e01.en.srt", "show.s01e02.en.srt"}
	if got := testsupport.ListNames(t, env.episodes); !slices.Equal(got, want) {
		t.Fatalf("after undo = %v, want %v", got, want)
	}
}

func TestRenameCommandCountMismatch(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.TouchFiles(t, env.episodes, "a.s01e01.mkv", "a.s01e02.mkv", "b.s01e01.srt")

	_, _, err := runCLI(t, []string{"rename", env.episodes}, env.configPath)
	if !errors.Is(err, renamer.ErrCountMismatch) {
		t.Fatalf("expected count mismatch, got %v", err)
	}
	requireContains(t, err.Error(), "--ignore-number-difference")

	out, _, err := runCLI(t, []string{"rename", "-i", env.episodes}, env.configPath)
	if err != nil {
		t.Fatalf("rename -i: %v", err)
	}
	requireContains(t, out, "a.s01e02.mkv")
	if got := testsupport.ListNames(t, env.episodes); !slices.Contains(got, "a.s01e01.srt") {
		t.Fatalf("expected a.s01e01.srt in %v", got)
	}
}

func TestRenameCommandDryRunLeavesFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.TouchFiles(t, env.episodes, "x.s02e03.mp4", "y.s02e03.srt")

	out, _, err := runCLI(t, []string{"rename", "--dry-run", env.episodes}, env.configPath)
	if err != nil {
		t.Fatalf("rename --dry-run: %v", err)
	}
	requireContains(t, out, "planned")
	requireContains(t, out, "Planned")

	want := []string{"x.s02e03.mp4", "y.s02e03.srt"}
	if got := testsupport.ListNames(t, env.episodes); !slices.Equal(got, want) {
		t.Fatalf("dry run touched files: %v", got)
	}
}

func TestRenameCommandPolicyFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.TouchFiles(t, env.episodes, "show.s4e1.mkv", "show.s04e01.srt")

	out, _, err := runCLI(t, []string{"rename", env.episodes}, env.configPath)
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	requireContains(t, out, "No subtitles matched")

	if _, _, err := runCLI(t, []string{"rename", "--policy", "numeric", env.episodes}, env.configPath); err != nil {
		t.Fatalf("rename --policy numeric: %v", err)
	}
	if got := testsupport.ListNames(t, env.episodes); !slices.Contains(got, "show.s4e1.srt") {
		t.Fatalf("expected show.s4e1.srt in %v", got)
	}

	if _, _, err := runCLI(t, []string{"rename", "--policy", "fuzzy", env.episodes}, env.configPath); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestUndoWithoutRuns(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"undo"}, env.configPath); err == nil {
		t.Fatal("expected error when no runs are recorded")
	}
}

func TestHistoryDisabled(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithHistoryDisabled())
	_, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err == nil {
		t.Fatal("expected error with history disabled")
	}
	requireContains(t, err.Error(), "disabled")
}
