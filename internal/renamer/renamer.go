package renamer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"subrename/internal/config"
	"subrename/internal/fsutil"
	"subrename/internal/history"
	"subrename/internal/logging"
	"subrename/internal/media"
	"subrename/internal/signature"
)

// Journal records executed renames and serves them back for undo.
// *history.Store satisfies it.
type Journal interface {
	Record(ctx context.Context, entry history.Entry) (history.Entry, error)
	LatestRun(ctx context.Context) (history.Run, error)
	Entries(ctx context.Context, runID string) ([]history.Entry, error)
	MarkReverted(ctx context.Context, id int64, at time.Time) error
	MarkSkipped(ctx context.Context, id int64, reason string, at time.Time) error
}

// Options tunes a single run.
type Options struct {
	DryRun              bool
	IgnoreCountMismatch bool
	Overwrite           bool
	Policy              signature.Policy
}

// OptionsFromConfig seeds run options from the [rename] and [matching]
// configuration sections.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	policy, err := signature.ParsePolicy(cfg.Matching.Policy)
	if err != nil {
		return Options{}, err
	}
	return Options{
		DryRun:              cfg.Rename.DryRun,
		IgnoreCountMismatch: cfg.Rename.IgnoreCountMismatch,
		Overwrite:           cfg.Rename.OverwriteExisting,
		Policy:              policy,
	}, nil
}

// Report summarizes a run.
type Report struct {
	RunID              string
	Directory          string
	DryRun             bool
	Movies             int
	Subtitles          int
	Actions            []Action
	UnmatchedMovies    []media.File
	UnmatchedSubtitles []media.File
}

// Count returns how many actions ended with status.
func (r *Report) Count(status Status) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, action := range r.Actions {
		if action.Status == status {
			n++
		}
	}
	return n
}

// Renamer executes rename runs.
type Renamer struct {
	classifier *media.Classifier
	journal    Journal
	logger     *slog.Logger

	newRunID func() string
	now      func() time.Time
	rename   func(src, dst string, overwrite bool) error
	exists   func(path string) bool
}

// New builds a Renamer. journal may be nil to disable the history.
func New(classifier *media.Classifier, journal Journal, logger *slog.Logger) *Renamer {
	return &Renamer{
		classifier: classifier,
		journal:    journal,
		logger:     logging.NewComponentLogger(logger, "renamer"),
		newRunID:   uuid.NewString,
		now:        time.Now,
		rename:     fsutil.Rename,
		exists: func(path string) bool {
			ok, err := fsutil.Exists(path)
			// An unreadable path is treated as taken.
			return ok || err != nil
		},
	}
}

// NewFromConfig builds a Renamer whose classifier uses the configured
// extension lists.
func NewFromConfig(cfg *config.Config, journal Journal, logger *slog.Logger) (*Renamer, error) {
	classifier, err := media.NewClassifier(cfg.Media.MovieExtensions, cfg.Media.SubtitleExtensions)
	if err != nil {
		return nil, fmt.Errorf("media classifier: %w", err)
	}
	return New(classifier, journal, logger), nil
}

// Run pairs and renames the subtitles in dir. On a filesystem failure the
// partial report is returned together with a *RenameError.
func (r *Renamer) Run(ctx context.Context, dir string, opts Options) (*Report, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory: %w", err)
	}

	listing, err := media.Scan(absDir, r.classifier)
	if err != nil {
		return nil, err
	}

	movies, subtitles := len(listing.Movies), len(listing.Subtitles)
	if !opts.IgnoreCountMismatch && movies != subtitles {
		return nil, &CountMismatchError{Movies: movies, Subtitles: subtitles}
	}

	report := &Report{
		RunID:     r.newRunID(),
		Directory: absDir,
		DryRun:    opts.DryRun,
		Movies:    movies,
		Subtitles: subtitles,
	}
	ctx = logging.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("rename run started",
		logging.String(logging.FieldDirectory, absDir),
		logging.Int("movies", movies),
		logging.Int("subtitles", subtitles),
		logging.String("policy", opts.Policy.String()),
		logging.Bool("dry_run", opts.DryRun),
	)

	plan := BuildPlan(listing, signature.Matcher{Policy: opts.Policy}, opts.Overwrite, r.exists)
	report.UnmatchedMovies = plan.UnmatchedMovies
	report.UnmatchedSubtitles = plan.UnmatchedSubtitles
	for _, movie := range plan.UnmatchedMovies {
		logger.Debug("no subtitle matched movie",
			logging.Args(append(logging.DecisionAttrs("subtitle_match", "unmatched", "no subtitle with the same signature"),
				logging.String("movie", movie.Name()))...)...)
	}

	for i := range plan.Actions {
		action := &plan.Actions[i]
		if err := ctx.Err(); err != nil {
			report.Actions = append(report.Actions, plan.Actions[:i]...)
			return report, err
		}
		if err := r.execute(ctx, logger, report, action, opts); err != nil {
			report.Actions = append(report.Actions, plan.Actions[:i+1]...)
			return report, err
		}
	}
	report.Actions = plan.Actions

	logger.Info("rename run finished",
		logging.Int("renamed", report.Count(StatusRenamed)),
		logging.Int("planned", report.Count(StatusPlanned)),
		logging.Int("skipped", report.Count(StatusSkipped)),
		logging.Int("conflicts", report.Count(StatusConflict)),
		logging.Int("unmatched_movies", len(report.UnmatchedMovies)),
		logging.Int("unmatched_subtitles", len(report.UnmatchedSubtitles)),
	)
	return report, nil
}

func (r *Renamer) execute(ctx context.Context, logger *slog.Logger, report *Report, action *Action, opts Options) error {
	attrs := logging.RenameAttrs(action.Signature.String(), action.Subtitle.Path, action.Target)

	switch action.Status {
	case StatusSkipped:
		logger.Debug("subtitle already named after movie", logging.Args(attrs...)...)
		return nil
	case StatusConflict:
		logging.WarnWithContext(logger, "subtitle target is taken", "rename_conflict",
			append(attrs, logging.String("reason", action.Reason))...)
		return nil
	}

	if opts.DryRun {
		action.Status = StatusPlanned
		logger.Info("would rename subtitle", logging.Args(attrs...)...)
		return nil
	}

	if err := r.rename(action.Subtitle.Path, action.Target, opts.Overwrite); err != nil {
		if errors.Is(err, fsutil.ErrTargetExists) {
			action.Status = StatusConflict
			action.Reason = "target file appeared during run"
			logging.WarnWithContext(logger, "subtitle target is taken", "rename_conflict",
				append(attrs, logging.Error(err))...)
			return nil
		}
		return &RenameError{Phase: "rename", From: action.Subtitle.Path, To: action.Target, Err: err}
	}
	action.Status = StatusRenamed
	logger.Info("renamed subtitle", logging.Args(attrs...)...)

	if r.journal == nil {
		return nil
	}
	if _, err := r.journal.Record(ctx, history.Entry{
		RunID:      report.RunID,
		Directory:  report.Directory,
		SourcePath: action.Subtitle.Path,
		TargetPath: action.Target,
		MoviePath:  action.Movie.Path,
		Signature:  action.Signature.String(),
		RenamedAt:  r.now(),
	}); err != nil {
		logging.WarnWithContext(logger, "failed to journal rename", "history_write",
			append(attrs,
				logging.Error(err),
				logging.String(logging.FieldImpact, "rename cannot be undone"),
			)...)
	}
	return nil
}
