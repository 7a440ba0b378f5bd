package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/taskplan/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// CreateRun inserts a finished run. The report columns are denormalized so
// list queries never parse the JSON blobs.
func (s *SQLiteStore) CreateRun(ctx context.Context, run *model.Run) error {
	s.logger.Debug("sql", "op", "insert", "table", "runs", "id", run.ID)

	if run.Report == nil {
		return fmt.Errorf("run %s has no report", run.ID)
	}

	tasksJSON, err := json.Marshal(run.Tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	entriesJSON, err := json.Marshal(run.Entries)
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	reportJSON, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, name, algorithm, task_count, makespan_ns, total_completion_ns, avg_tardiness_ns, on_time_pct, tasks, entries, report, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Name, run.Algorithm, run.Report.TaskCount,
		int64(run.Report.Makespan), int64(run.Report.TotalCompletion), int64(run.Report.AvgTardiness), run.Report.OnTimePct,
		string(tasksJSON), string(entriesJSON), string(reportJSON),
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// GetRun returns the run with the given ID, or nil if it does not exist.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	s.logger.Debug("sql", "op", "select", "table", "runs", "id", id)

	var run model.Run
	var tasksJSON, entriesJSON, reportJSON, createdAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, algorithm, tasks, entries, report, created_at
		 FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &run.Name, &run.Algorithm, &tasksJSON, &entriesJSON, &reportJSON, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tasksJSON), &run.Tasks); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}
	if err := json.Unmarshal([]byte(entriesJSON), &run.Entries); err != nil {
		return nil, fmt.Errorf("unmarshal entries: %w", err)
	}
	if err := json.Unmarshal([]byte(reportJSON), &run.Report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	return &run, nil
}

// ListRuns returns runs newest first, with the total count for pagination.
func (s *SQLiteStore) ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.Run, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "runs", "limit", opts.Limit, "offset", opts.Offset, "algorithm", opts.Algorithm)
	opts.Clamp()

	where := ""
	args := []any{}
	if opts.Algorithm != "" {
		where = " WHERE algorithm = ?"
		args = append(args, opts.Algorithm)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, algorithm, tasks, entries, report, created_at
		 FROM runs`+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, opts.Limit, opts.Offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		var run model.Run
		var tasksJSON, entriesJSON, reportJSON, createdAt string

		if err := rows.Scan(&run.ID, &run.Name, &run.Algorithm, &tasksJSON, &entriesJSON, &reportJSON, &createdAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(tasksJSON), &run.Tasks); err != nil {
			return nil, 0, fmt.Errorf("unmarshal tasks: %w", err)
		}
		if err := json.Unmarshal([]byte(entriesJSON), &run.Entries); err != nil {
			return nil, 0, fmt.Errorf("unmarshal entries: %w", err)
		}
		if err := json.Unmarshal([]byte(reportJSON), &run.Report); err != nil {
			return nil, 0, fmt.Errorf("unmarshal report: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

		runs = append(runs, &run)
	}
	return runs, total, rows.Err()
}

// DeleteRun removes a run. Deleting a missing run returns sql.ErrNoRows.
func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "runs", "id", id)

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
