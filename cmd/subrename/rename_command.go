package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"subrename/internal/config"
	"subrename/internal/media"
	"subrename/internal/renamer"
	"subrename/internal/signature"
)

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun     bool
		ignoreDiff bool
		overwrite  bool
		policy     string
	)

	cmd := &cobra.Command{
		Use:   "rename [directory]",
		Short: "Rename subtitles after the movie files with the same season/episode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return ctx.withRenamer(func(cfg *config.Config, r *renamer.Renamer) error {
				opts, err := renamer.OptionsFromConfig(cfg)
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				if flags.Changed("dry-run") {
					opts.DryRun = dryRun
				}
				if flags.Changed("ignore-number-difference") {
					opts.IgnoreCountMismatch = ignoreDiff
				}
				if flags.Changed("overwrite") {
					opts.Overwrite = overwrite
				}
				if flags.Changed("policy") {
					parsed, err := signature.ParsePolicy(policy)
					if err != nil {
						return err
					}
					opts.Policy = parsed
				}

				report, err := r.Run(cmd.Context(), dir, opts)
				if errors.Is(err, renamer.ErrCountMismatch) {
					return fmt.Errorf("%w; use --ignore-number-difference to rename anyway", err)
				}
				if report != nil {
					printRenameReport(cmd.OutOrStdout(), report)
				}
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be renamed without touching files")
	cmd.Flags().BoolVarP(&ignoreDiff, "ignore-number-difference", "i", false, "Rename even when movie and subtitle counts differ")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files that already carry the target name")
	cmd.Flags().StringVar(&policy, "policy", "", "Signature comparison policy (exact or numeric)")
	return cmd
}

func printRenameReport(out io.Writer, report *renamer.Report) {
	colorize := shouldColorize(out)

	if len(report.Actions) > 0 {
		rows := make([]table.Row, 0, len(report.Actions))
		for _, action := range report.Actions {
			rows = append(rows, table.Row{
				action.Signature.String(),
				action.Subtitle.Name(),
				filepath.Base(action.Target),
				string(action.Status),
			})
		}
		fmt.Fprintln(out, renderTable(actionColumns, rows, colorize))
	} else {
		fmt.Fprintln(out, "No subtitles matched any movie file")
	}

	done := report.Count(renamer.StatusRenamed)
	label := "Renamed"
	if report.DryRun {
		done = report.Count(renamer.StatusPlanned)
		label = "Planned"
	}
	fmt.Fprintln(out, renderStatusLine(label, statusOK, fmt.Sprintf("%d of %d subtitles", done, report.Subtitles), colorize))
	if skipped := report.Count(renamer.StatusSkipped); skipped > 0 {
		fmt.Fprintln(out, renderStatusLine("Skipped", statusInfo, fmt.Sprintf("%d already named", skipped), colorize))
	}
	conflicts := report.Count(renamer.StatusConflict)
	fmt.Fprintln(out, renderStatusLine("Conflicts", countKind(conflicts, statusWarn), fmt.Sprintf("%d", conflicts), colorize))
	if n := len(report.UnmatchedMovies); n > 0 {
		fmt.Fprintln(out, renderStatusLine("Unmatched", statusWarn, fmt.Sprintf("%d movies: %s", n, joinNames(report.UnmatchedMovies)), colorize))
	}
	if n := len(report.UnmatchedSubtitles); n > 0 {
		fmt.Fprintln(out, renderStatusLine("Leftover", statusWarn, fmt.Sprintf("%d subtitles: %s", n, joinNames(report.UnmatchedSubtitles)), colorize))
	}
	if report.RunID != "" && !report.DryRun && report.Count(renamer.StatusRenamed) > 0 {
		fmt.Fprintf(out, "Run %s (undo with: subrename undo %s)\n", report.RunID, report.RunID)
	}
}

func joinNames(files []media.File) string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name())
	}
	return strings.Join(names, ", ")
}
