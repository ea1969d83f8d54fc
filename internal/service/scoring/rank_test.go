package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendwatch/internal/domain/trend"
)

func statsFixture() map[string]trend.HashtagStat {
	return map[string]trend.HashtagStat{
		"#low":  {Hashtag: "#low", Mentions: 1, TotalEngagement: 5, VelocityScore: 5, FirstSeen: 3},
		"#high": {Hashtag: "#high", Mentions: 4, TotalEngagement: 90, VelocityScore: 90, FirstSeen: 2},
		"#tieA": {Hashtag: "#tieA", Mentions: 2, TotalEngagement: 40, VelocityScore: 40, FirstSeen: 0},
		"#tieB": {Hashtag: "#tieB", Mentions: 3, TotalEngagement: 40, VelocityScore: 40, FirstSeen: 1},
	}
}

func TestRankOrderAndDenseRanks(t *testing.T) {
	fetchedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	ranked := Rank(statsFixture(), 20, "twitter_search", fetchedAt)

	require.Len(t, ranked, 4)
	assert.Equal(t, []string{"#high", "#tieA", "#tieB", "#low"}, hashtags(ranked))
	for i, row := range ranked {
		assert.Equal(t, i+1, row.Rank)
		assert.Equal(t, "twitter_search", row.Source)
		assert.Equal(t, fetchedAt, row.Timestamp)
	}
}

func TestRankTieBreakIsFirstSeen(t *testing.T) {
	ranked := Rank(statsFixture(), 20, "twitter_search", time.Now())

	// Equal velocity scores keep discovery order.
	assert.Equal(t, "#tieA", ranked[1].Hashtag)
	assert.Equal(t, "#tieB", ranked[2].Hashtag)
}

func TestRankLimit(t *testing.T) {
	ranked := Rank(statsFixture(), 2, "twitter_search", time.Now())

	require.Len(t, ranked, 2)
	assert.Equal(t, []string{"#high", "#tieA"}, hashtags(ranked))
}

func TestRankLimitBeyondAvailable(t *testing.T) {
	ranked := Rank(statsFixture(), 50, "twitter_search", time.Now())
	assert.Len(t, ranked, 4)
}

func TestRankInvalidLimitFallsBackToDefault(t *testing.T) {
	assert.Len(t, Rank(statsFixture(), 0, "twitter_search", time.Now()), 4)
	assert.Len(t, Rank(statsFixture(), -7, "twitter_search", time.Now()), 4)
}

func TestRankEmptyStats(t *testing.T) {
	ranked := Rank(map[string]trend.HashtagStat{}, 20, "twitter_search", time.Now())
	assert.NotNil(t, ranked)
	assert.Empty(t, ranked)
}

func TestRankIdempotent(t *testing.T) {
	stats := statsFixture()
	fetchedAt := time.Now()

	first := Rank(stats, 3, "twitter_search", fetchedAt)
	second := Rank(stats, 3, "twitter_search", fetchedAt)

	assert.Equal(t, first, second)
}

func hashtags(ranked []trend.RankedTrend) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Hashtag)
	}
	return out
}
