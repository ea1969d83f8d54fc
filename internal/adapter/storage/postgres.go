// internal/adapter/storage/postgres.go

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"trendwatch/internal/domain/trend"
)

// PostgresStore persists trend snapshots durably. The cache loads the
// most recent snapshot at startup so a restarted process begins warm.
//
// Schema:
//
//	CREATE TABLE trend_snapshots (
//	    id         UUID PRIMARY KEY,
//	    fetched_at TIMESTAMPTZ NOT NULL,
//	    trends     JSONB NOT NULL
//	);
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a snapshot store backed by Postgres.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

var _ trend.SnapshotStore = (*PostgresStore)(nil)

// Save persists one snapshot.
func (s *PostgresStore) Save(ctx context.Context, snap trend.Snapshot) error {
	trendsJSON, err := json.Marshal(snap.Trends)
	if err != nil {
		return fmt.Errorf("error marshaling trends: %w", err)
	}

	query := `
		INSERT INTO trend_snapshots (id, fetched_at, trends)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := s.db.Exec(ctx, query, snap.ID, snap.FetchedAt, trendsJSON); err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// Latest returns the most recently fetched snapshot, or nil when no
// snapshot has been saved yet.
func (s *PostgresStore) Latest(ctx context.Context) (*trend.Snapshot, error) {
	query := `
		SELECT id, fetched_at, trends
		FROM trend_snapshots
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var (
		id         string
		fetchedAt  time.Time
		trendsJSON []byte
	)
	err := s.db.QueryRow(ctx, query).Scan(&id, &fetchedAt, &trendsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	var trends []trend.RankedTrend
	if err := json.Unmarshal(trendsJSON, &trends); err != nil {
		return nil, fmt.Errorf("error unmarshaling trends: %w", err)
	}

	return &trend.Snapshot{
		ID:        id,
		Trends:    trends,
		FetchedAt: fetchedAt,
	}, nil
}
