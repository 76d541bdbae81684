package history_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"displaysync/internal/display"
	"displaysync/internal/failures"
	"displaysync/internal/history"
	"displaysync/internal/ini"
	"displaysync/internal/reconcile"
	"displaysync/internal/regstore"
	"displaysync/internal/testsupport"
)

func TestRecordAndRecent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, state := range []string{"done", "failed", "done"} {
		entry := history.Entry{
			RunID:      "run-" + string(rune('a'+i)),
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
			State:      state,
			Width:      2560,
		}
		if _, err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].RunID != "run-c" || entries[1].RunID != "run-b" {
		t.Fatalf("unexpected order: %s, %s", entries[0].RunID, entries[1].RunID)
	}
	if entries[0].Duration() != time.Second {
		t.Fatalf("unexpected duration %s", entries[0].Duration())
	}
	if !entries[0].StartedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("timestamp not round-tripped: %s", entries[0].StartedAt)
	}

	all, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
}

func TestRecordRejectsDuplicateRunID(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	entry := history.Entry{RunID: "same", State: "done"}
	if _, err := store.Record(context.Background(), entry); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := store.Record(context.Background(), entry); err == nil {
		t.Fatal("expected unique constraint violation")
	}
}

func TestOpenIsReentrant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	first, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := first.Record(context.Background(), history.Entry{RunID: "x", State: "done"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	entries, err := second.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected persisted entry, got %d", len(entries))
	}
}

func TestOpenStampsSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	version, err := store.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != history.LatestSchema {
		t.Fatalf("schema version = %d, want %d", version, history.LatestSchema)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	var tables int
	if err := db.QueryRow("SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'").Scan(&tables); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if tables != 0 {
		t.Fatal("journal must not carry a separate version table")
	}
	_ = db.Close()
}

func TestOpenRefusesNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", history.LatestSchema+1)); err != nil {
		t.Fatalf("bump user_version: %v", err)
	}
	_ = db.Close()

	if _, err := history.Open(path); err == nil {
		t.Fatal("expected a journal from a newer build to be refused")
	}
}

func TestFromReport(t *testing.T) {
	report := reconcile.Report{
		RunID:    "r1",
		DryRun:   true,
		State:    reconcile.StateFailed,
		FailedAt: reconcile.StateValidateIni,
		Display:  display.Info{Index: 1, Width: 2560, Height: 1440, ColorDepth: 32, RefreshRate: 60, RefreshRateDefaulted: true},
		RegistryChanges: []regstore.Change{
			{Name: "Width", Old: regstore.DWord(1920), New: regstore.DWord(2560)},
			{Name: "ColorDepth", Old: regstore.DWord(32), New: regstore.DWord(32)},
		},
		IniChanges: []ini.Change{
			{Key: "Width", Old: "Width=1920", New: "Width=2560", OldValue: "1920", NewValue: "2560"},
			{Key: "Display", Old: "Display = 1", New: "Display=1", OldValue: "1", NewValue: "1"},
		},
	}
	runErr := &failures.Missing{Kind: failures.MissingIniKey, Path: "game.ini", Section: "Player", Name: "RefreshRate"}

	entry := history.FromReport(report, runErr)
	if entry.State != "failed" || entry.FailedAt != "validate_ini" {
		t.Fatalf("unexpected state fields %+v", entry)
	}
	if entry.RegistryChanges != 1 || entry.IniChanges != 1 {
		t.Fatalf("expected only modified values counted, got %+v", entry)
	}
	if entry.ErrorKind != "missing_structure" || !errors.Is(runErr, failures.ErrMissingStructure) {
		t.Fatalf("unexpected error kind %q", entry.ErrorKind)
	}
	if !entry.DryRun || !entry.RefreshDefaulted || entry.DisplayIndex != 1 {
		t.Fatalf("unexpected entry %+v", entry)
	}
}
