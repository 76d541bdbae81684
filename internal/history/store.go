package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"displaysync/internal/failures"
	"displaysync/internal/reconcile"
)

// Entry is one recorded run.
type Entry struct {
	ID               int64
	RunID            string
	StartedAt        time.Time
	FinishedAt       time.Time
	DryRun           bool
	State            string
	FailedAt         string
	DisplayIndex     int
	Width            int
	Height           int
	ColorDepth       int
	RefreshRate      int
	RefreshDefaulted bool
	RegistryChanges  int
	IniChanges       int
	ErrorKind        string
	ErrorMessage     string
}

// Duration returns how long the run took.
func (e Entry) Duration() time.Duration {
	if e.FinishedAt.Before(e.StartedAt) {
		return 0
	}
	return e.FinishedAt.Sub(e.StartedAt)
}

// Store persists run entries in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or connects to the journal at path and upgrades its schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
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

	store := &Store{db: db, path: path}
	if err := store.upgradeSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
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

// FromReport converts a run report and its error into an Entry.
func FromReport(report reconcile.Report, runErr error) Entry {
	entry := Entry{
		RunID:            report.RunID,
		StartedAt:        report.StartedAt,
		FinishedAt:       report.FinishedAt,
		DryRun:           report.DryRun,
		State:            report.State.String(),
		DisplayIndex:     report.Display.Index,
		Width:            report.Display.Width,
		Height:           report.Display.Height,
		ColorDepth:       report.Display.ColorDepth,
		RefreshRate:      report.Display.RefreshRate,
		RefreshDefaulted: report.Display.RefreshRateDefaulted,
	}
	for _, c := range report.RegistryChanges {
		if c.Modified() {
			entry.RegistryChanges++
		}
	}
	for _, c := range report.IniChanges {
		if c.Modified() {
			entry.IniChanges++
		}
	}
	if report.State == reconcile.StateFailed {
		entry.FailedAt = report.FailedAt.String()
	}
	if runErr != nil {
		entry.ErrorKind = failures.Classify(runErr)
		entry.ErrorMessage = runErr.Error()
	}
	return entry
}

// Record inserts entry and returns its row ID.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, started_at, finished_at, dry_run, state, failed_at,
            display_index, width, height, color_depth, refresh_rate, refresh_defaulted,
            registry_changes, ini_changes, error_kind, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		formatTime(entry.StartedAt),
		formatTime(entry.FinishedAt),
		boolToInt(entry.DryRun),
		entry.State,
		nullableString(entry.FailedAt),
		entry.DisplayIndex,
		entry.Width,
		entry.Height,
		entry.ColorDepth,
		entry.RefreshRate,
		boolToInt(entry.RefreshDefaulted),
		entry.RegistryChanges,
		entry.IniChanges,
		nullableString(entry.ErrorKind),
		nullableString(entry.ErrorMessage),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, run_id, started_at, finished_at, dry_run, state, failed_at,
            display_index, width, height, color_depth, refresh_rate, refresh_defaulted,
            registry_changes, ini_changes, error_kind, error_message
        FROM runs ORDER BY started_at DESC, id DESC`
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

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry                      Entry
		started, finished          string
		dryRun, refreshDefaulted   int
		failedAt, errKind, errText sql.NullString
	)
	if err := rows.Scan(
		&entry.ID,
		&entry.RunID,
		&started,
		&finished,
		&dryRun,
		&entry.State,
		&failedAt,
		&entry.DisplayIndex,
		&entry.Width,
		&entry.Height,
		&entry.ColorDepth,
		&entry.RefreshRate,
		&refreshDefaulted,
		&entry.RegistryChanges,
		&entry.IniChanges,
		&errKind,
		&errText,
	); err != nil {
		return Entry{}, fmt.Errorf("scan run: %w", err)
	}
	entry.StartedAt = parseTime(started)
	entry.FinishedAt = parseTime(finished)
	entry.DryRun = dryRun != 0
	entry.RefreshDefaulted = refreshDefaulted != 0
	entry.FailedAt = failedAt.String
	entry.ErrorKind = errKind.String
	entry.ErrorMessage = errText.String
	return entry, nil
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
