package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all taskplan tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id                  TEXT PRIMARY KEY,
		name                TEXT NOT NULL DEFAULT '',
		algorithm           TEXT NOT NULL,
		task_count          INTEGER NOT NULL,
		makespan_ns         INTEGER NOT NULL,
		total_completion_ns INTEGER NOT NULL,
		avg_tardiness_ns    INTEGER NOT NULL,
		on_time_pct         REAL NOT NULL,
		tasks               TEXT NOT NULL,
		entries             TEXT NOT NULL,
		report              TEXT NOT NULL,
		created_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_algorithm ON runs(algorithm)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
}

// migrate applies the schema statements in order.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
