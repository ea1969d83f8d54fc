// internal/domain/trend/source.go

package trend

import (
	"context"
)

// Source defines the interface for an upstream post provider
type Source interface {
	// Name returns the source label stamped on ranked rows
	Name() string

	// FetchAll returns posts sampled across all configured categories.
	// A single failing category is skipped; FetchAll fails only when no
	// category produced posts.
	FetchAll(ctx context.Context) ([]Post, error)
}

// SnapshotStore defines optional persistence for computed snapshots
type SnapshotStore interface {
	// Save persists a snapshot after a successful refresh
	Save(ctx context.Context, snap Snapshot) error

	// Latest returns the most recently saved snapshot, or nil when the
	// store is empty
	Latest(ctx context.Context) (*Snapshot, error)
}
