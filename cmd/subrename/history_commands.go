package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"subrename/internal/config"
	"subrename/internal/history"
	"subrename/internal/renamer"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled rename runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				out := cmd.OutOrStdout()
				if id := strings.TrimSpace(runID); id != "" {
					entries, err := store.Entries(cmd.Context(), id)
					if err != nil {
						return err
					}
					printEntries(out, entries)
					return nil
				}

				runs, err := store.Runs(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(out, "No rename runs recorded")
					return nil
				}
				printRuns(out, runs)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the renames of one run")
	return cmd
}

func printRuns(out io.Writer, runs []history.Run) {
	rows := make([]table.Row, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, table.Row{
			run.ID,
			formatTime(run.StartedAt),
			run.Directory,
			run.Renames,
			run.Reverted,
			run.Skipped,
		})
	}
	fmt.Fprintln(out, renderTable(runColumns, rows, false))
}

func printEntries(out io.Writer, entries []history.Entry) {
	rows := make([]table.Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, table.Row{
			strings.ToUpper(entry.Signature),
			filepath.Base(entry.SourcePath),
			filepath.Base(entry.TargetPath),
			formatTime(entry.RenamedAt),
			undoState(entry),
		})
	}
	fmt.Fprintln(out, renderTable(entryColumns, rows, false))
}

// undoState summarizes what undo has done with an entry so far.
func undoState(entry history.Entry) string {
	switch {
	case entry.RevertedAt != nil:
		return "reverted " + formatTime(*entry.RevertedAt)
	case entry.SkippedAt != nil:
		return entry.SkipReason + " " + formatTime(*entry.SkippedAt)
	default:
		return ""
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(historyTimeLayout)
}

func newUndoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "undo [run-id]",
		Short: "Restore the original subtitle names of a run (latest by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var runID string
			if len(args) == 1 {
				runID = args[0]
			}
			return ctx.withRenamer(func(_ *config.Config, r *renamer.Renamer) error {
				report, err := r.Undo(cmd.Context(), runID)
				if report != nil {
					printUndoReport(cmd.OutOrStdout(), report)
				}
				return err
			})
		},
	}
}

func printUndoReport(out io.Writer, report *renamer.UndoReport) {
	colorize := shouldColorize(out)
	if len(report.Results) > 0 {
		rows := make([]table.Row, 0, len(report.Results))
		for _, res := range report.Results {
			rows = append(rows, table.Row{
				filepath.Base(res.Entry.TargetPath),
				filepath.Base(res.Entry.SourcePath),
				string(res.Status),
			})
		}
		fmt.Fprintln(out, renderTable(undoColumns, rows, colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Restored", statusOK,
		fmt.Sprintf("%d of %d renames in run %s", report.Count(renamer.UndoRestored), len(report.Results), report.RunID), colorize))
	problems := report.Count(renamer.UndoMissing) + report.Count(renamer.UndoConflict)
	fmt.Fprintln(out, renderStatusLine("Problems", countKind(problems, statusWarn), strconv.Itoa(problems), colorize))
}
