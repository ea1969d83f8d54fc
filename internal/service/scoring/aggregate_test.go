package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendwatch/internal/domain/trend"
)

func TestAggregateCaseInsensitiveIdentity(t *testing.T) {
	posts := []trend.Post{
		{Text: "check out #AI and #ai trends!", Likes: 10, Retweets: 5, Replies: 0},
		{Text: "#ai is huge", Likes: 1, Retweets: 1, Replies: 1},
	}

	stats := Aggregate(posts)

	require.Len(t, stats, 1)
	stat := stats["#ai"]
	assert.Equal(t, "#ai", stat.Hashtag)
	assert.Equal(t, 2, stat.Mentions)
	assert.Equal(t, 18, stat.TotalEngagement)
	assert.Equal(t, 18, stat.VelocityScore)
}

func TestAggregateMultiTagPost(t *testing.T) {
	posts := []trend.Post{
		{Text: "#alpha meets #beta", Likes: 3, Retweets: 2, Replies: 1},
	}

	stats := Aggregate(posts)

	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats["#alpha"].Mentions)
	assert.Equal(t, 6, stats["#alpha"].TotalEngagement)
	assert.Equal(t, 1, stats["#beta"].Mentions)
	assert.Equal(t, 6, stats["#beta"].TotalEngagement)
}

func TestAggregateMentionCountsArePostCounts(t *testing.T) {
	posts := []trend.Post{
		{Text: "#go #go #go", Likes: 1},
		{Text: "#go again"},
		{Text: "no tags here", Likes: 100},
	}

	stats := Aggregate(posts)

	require.Len(t, stats, 1)
	// Three occurrences in one post still count as one mention.
	assert.Equal(t, 2, stats["#go"].Mentions)
	assert.Equal(t, 1, stats["#go"].TotalEngagement)
}

func TestAggregateFirstSeenOrder(t *testing.T) {
	posts := []trend.Post{
		{Text: "#first then #second"},
		{Text: "#third and #first again"},
	}

	stats := Aggregate(posts)

	require.Len(t, stats, 3)
	assert.Equal(t, 0, stats["#first"].FirstSeen)
	assert.Equal(t, 1, stats["#second"].FirstSeen)
	assert.Equal(t, 2, stats["#third"].FirstSeen)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]trend.Post{}))
}
