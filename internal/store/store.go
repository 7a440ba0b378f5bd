// Package store persists finished scheduling runs. The engine never touches
// it; the CLI and server save completed schedules here so they can be listed
// and re-inspected later.
package store

import (
	"context"

	"github.com/me/taskplan/pkg/model"
)

// Store defines the persistence layer for scheduling runs.
type Store interface {
	CreateRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.Run, int, error)
	DeleteRun(ctx context.Context, id string) error

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
