// internal/adapter/storage/redis.go

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"trendwatch/internal/domain/trend"
)

const snapshotKey = "trendwatch:snapshot:latest"

// RedisStore keeps the latest snapshot in Redis. Only one snapshot is
// retained; each refresh overwrites the previous value. Staleness is
// the cache's concern, so the key carries no expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a snapshot store backed by Redis.
func NewRedisStore(addr, password string, db int) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client}
}

var _ trend.SnapshotStore = (*RedisStore)(nil)

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Save overwrites the stored snapshot.
func (s *RedisStore) Save(ctx context.Context, snap trend.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("error marshaling snapshot: %w", err)
	}

	if err := s.client.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("error writing snapshot: %w", err)
	}

	return nil
}

// Latest returns the stored snapshot, or nil when none exists.
func (s *RedisStore) Latest(ctx context.Context) (*trend.Snapshot, error) {
	data, err := s.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading snapshot: %w", err)
	}

	var snap trend.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("error unmarshaling snapshot: %w", err)
	}

	return &snap, nil
}
