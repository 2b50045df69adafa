// Package persistence provides run and point persistence functionality.
package persistence

import (
	"context"
	"time"

	"github.com/tathienbao/tastream/internal/types"
)

// Repository defines the interface for run persistence.
type Repository interface {
	// Run operations
	SaveRun(ctx context.Context, run types.Run) error
	UpdateRun(ctx context.Context, run types.Run) error
	GetRun(ctx context.Context, id string) (*types.Run, error)
	ListRuns(ctx context.Context, limit int) ([]types.Run, error)

	// Point operations
	SavePoints(ctx context.Context, runID string, points []types.Point) error
	GetPoints(ctx context.Context, runID string, from, to time.Time) ([]types.Point, error)

	// Trigger operations
	SaveTrigger(ctx context.Context, runID string, trigger types.Trigger) error
	GetTriggers(ctx context.Context, runID string) ([]types.Trigger, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
