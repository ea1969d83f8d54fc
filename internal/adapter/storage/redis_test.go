package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendwatch/internal/adapter/storage"
	"trendwatch/internal/domain/trend"
)

// Integration test; requires a local Redis. Skipped otherwise.
func TestRedisStoreRoundTrip(t *testing.T) {
	store := storage.NewRedisStore("localhost:6379", "", 0)

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	snap := trend.Snapshot{
		ID:        "test-snapshot",
		FetchedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Trends: []trend.RankedTrend{
			{
				Rank:            1,
				Hashtag:         "#ai",
				Mentions:        4,
				TotalEngagement: 120,
				VelocityScore:   120,
				Source:          "twitter_search",
				Timestamp:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			},
		},
	}

	require.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snap.ID, loaded.ID)
	assert.True(t, snap.FetchedAt.Equal(loaded.FetchedAt))
	require.Len(t, loaded.Trends, 1)
	assert.Equal(t, snap.Trends[0], loaded.Trends[0])
}
