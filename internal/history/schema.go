package history

import (
	"context"
	"embed"
	"fmt"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// LatestSchema is the journal layout this build reads and writes. It is
// stored in the database header as PRAGMA user_version.
const LatestSchema = 1

// schemaSteps[v] upgrades a journal from version v to v+1. Append only.
var schemaSteps = [LatestSchema]string{
	"schema/runs_v1.sql",
}

// upgradeSchema brings the journal to LatestSchema in one transaction. A
// journal written by a newer build is refused rather than downgraded.
func (s *Store) upgradeSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema upgrade: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var version int
	if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read journal schema version: %w", err)
	}
	if version > LatestSchema {
		return fmt.Errorf("journal %s uses schema v%d, this build supports up to v%d", s.path, version, LatestSchema)
	}
	if version == LatestSchema {
		return nil
	}

	for v := version; v < LatestSchema; v++ {
		body, err := schemaFS.ReadFile(schemaSteps[v])
		if err != nil {
			return fmt.Errorf("load schema step v%d: %w", v+1, err)
		}
		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("upgrade journal to v%d: %w", v+1, err)
		}
	}
	// PRAGMA arguments cannot be bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", LatestSchema)); err != nil {
		return fmt.Errorf("stamp journal schema v%d: %w", LatestSchema, err)
	}
	return tx.Commit()
}

// SchemaVersion reports the layout version stamped in the journal.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read journal schema version: %w", err)
	}
	return version, nil
}
