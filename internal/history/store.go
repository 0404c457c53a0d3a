package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNoRuns is returned when the journal has no run to act on.
var ErrNoRuns = errors.New("no rename runs recorded")

// Store manages the rename journal backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database and applies migrations.
func Open(dbPath string) (*Store, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.upgradeSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// upgradeSchema runs, in one transaction, every embedded migration whose
// numeric prefix is above the database's user_version.
func (s *Store) upgradeSchema(ctx context.Context) error {
	names, err := fs.Glob(schemaFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema upgrade: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current int
	if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	latest := current
	slices.Sort(names)
	for _, name := range names {
		prefix, _, _ := strings.Cut(path.Base(name), "_")
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return fmt.Errorf("migration %s: version prefix: %w", name, err)
		}
		if version <= current {
			continue
		}
		body, err := schemaFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		latest = version
	}
	if latest == current {
		return nil
	}
	// PRAGMA arguments cannot be bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", latest)); err != nil {
		return fmt.Errorf("store schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema upgrade: %w", err)
	}
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a completed rename and returns it with its assigned ID.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if strings.TrimSpace(entry.RunID) == "" {
		return Entry{}, errors.New("record rename: run id is empty")
	}
	if entry.RenamedAt.IsZero() {
		entry.RenamedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO renames (
            run_id, directory, source_path, target_path, movie_path, signature, renamed_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Directory,
		entry.SourcePath,
		entry.TargetPath,
		entry.MoviePath,
		entry.Signature,
		entry.RenamedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert rename: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("last insert id: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// Runs lists runs newest first. A limit <= 0 returns every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT run_id, MIN(directory), MIN(renamed_at), COUNT(1), COUNT(reverted_at),
            SUM(CASE WHEN reverted_at IS NULL AND skipped_at IS NOT NULL THEN 1 ELSE 0 END)
        FROM renames
        GROUP BY run_id
        ORDER BY MIN(id) DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started string
		if err := rows.Scan(&run.ID, &run.Directory, &started, &run.Renames, &run.Reverted, &run.Skipped); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LatestRun returns the newest run that still has renames no undo has
// reverted or skipped.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	runs, err := s.Runs(ctx, 0)
	if err != nil {
		return Run{}, err
	}
	for _, run := range runs {
		if run.Active() {
			return run, nil
		}
	}
	return Run{}, ErrNoRuns
}

// Entries returns the renames recorded for runID in the order they happened.
func (s *Store) Entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, directory, source_path, target_path, movie_path, signature, renamed_at, reverted_at,
            skipped_at, skip_reason
        FROM renames WHERE run_id = ? ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var renamed string
		var reverted, skipped sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.RunID,
			&entry.Directory,
			&entry.SourcePath,
			&entry.TargetPath,
			&entry.MoviePath,
			&entry.Signature,
			&renamed,
			&reverted,
			&skipped,
			&entry.SkipReason,
		); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry.RenamedAt = parseTime(renamed)
		entry.RevertedAt = parseNullTime(reverted)
		entry.SkippedAt = parseNullTime(skipped)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNoRuns)
	}
	return entries, nil
}

// MarkReverted records that the rename with id was undone at the given time.
func (s *Store) MarkReverted(ctx context.Context, id int64, at time.Time) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE renames SET reverted_at = ? WHERE id = ? AND reverted_at IS NULL`,
		at.UTC().Format(timeLayout),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark reverted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark reverted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("mark reverted: entry %d not found or already reverted", id)
	}
	return nil
}

// MarkSkipped records that an undo could not restore the rename with id.
// Marking an entry again replaces the earlier reason.
func (s *Store) MarkSkipped(ctx context.Context, id int64, reason string, at time.Time) error {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE renames SET skipped_at = ?, skip_reason = ? WHERE id = ? AND reverted_at IS NULL`,
		at.UTC().Format(timeLayout),
		reason,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark skipped: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark skipped rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("mark skipped: entry %d not found or already reverted", id)
	}
	return nil
}

func parseNullTime(value sql.NullString) *time.Time {
	if !value.Valid {
		return nil
	}
	ts := parseTime(value.String)
	return &ts
}

func parseTime(value string) time.Time {
	ts, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
