package trend

import (
	"time"
)

// Post is a single fetched social post. Posts are owned by the fetch
// pipeline and discarded once aggregated.
type Post struct {
	Text      string
	Likes     int
	Retweets  int
	Replies   int
	CreatedAt time.Time
	Category  string
}

// Engagement is the post's combined interaction count.
func (p Post) Engagement() int {
	return p.Likes + p.Retweets + p.Replies
}

// HashtagStat holds the aggregate statistics for one distinct hashtag
// within a fetch cycle. Hashtag identity is case-normalized, so "#AI"
// and "#ai" share one stat.
type HashtagStat struct {
	Hashtag         string
	Mentions        int
	TotalEngagement int
	VelocityScore   int

	// FirstSeen is the discovery index during aggregation, used as the
	// stable tie-break when velocity scores are equal.
	FirstSeen int
}

// RankedTrend is one row of the externally visible ranking.
type RankedTrend struct {
	Rank            int       `json:"rank"`
	Hashtag         string    `json:"hashtag"`
	Mentions        int       `json:"mentions"`
	TotalEngagement int       `json:"total_engagement"`
	VelocityScore   int       `json:"velocity_score"`
	Source          string    `json:"source"`
	Timestamp       time.Time `json:"timestamp"`
}

// Snapshot is the result of one complete fetch-and-rank cycle. It is
// immutable once built; the cache swaps whole snapshots atomically.
type Snapshot struct {
	ID        string        `json:"id"`
	Trends    []RankedTrend `json:"trends"`
	FetchedAt time.Time     `json:"fetched_at"`
}

// Age reports how long ago the snapshot was computed.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// CacheState describes the trend cache lifecycle.
type CacheState string

const (
	StateEmpty CacheState = "empty"
	StateFresh CacheState = "fresh"
	StateStale CacheState = "stale"
)
