package twitter

import (
	"context"
	"errors"
	"testing"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendwatch/internal/domain/trend"
	"trendwatch/internal/logging"
	"trendwatch/internal/metrics"
)

type fakeSearcher struct {
	responses map[string]*twitter.TweetRecentSearchResponse
	errs      map[string]error
	calls     []string
}

func (f *fakeSearcher) TweetRecentSearch(_ context.Context, query string, _ twitter.TweetRecentSearchOpts) (*twitter.TweetRecentSearchResponse, error) {
	f.calls = append(f.calls, query)
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.responses[query], nil
}

func newTestSource(client searcher, categories []string) *Source {
	return &Source{
		client: client,
		cfg: Config{
			Categories:       categories,
			PostsPerCategory: 100,
			Timeout:          time.Second,
		},
		logger:  logging.New("twitter-test"),
		metrics: metrics.NewCollector(prometheus.NewRegistry()),
	}
}

func searchResponse(tweets ...*twitter.TweetObj) *twitter.TweetRecentSearchResponse {
	return &twitter.TweetRecentSearchResponse{
		Raw: &twitter.TweetRaw{Tweets: tweets},
	}
}

func TestFetchAllCoercesPosts(t *testing.T) {
	client := &fakeSearcher{
		responses: map[string]*twitter.TweetRecentSearchResponse{
			"viral": searchResponse(&twitter.TweetObj{
				Text:      "big launch #ai",
				CreatedAt: "2026-08-30T09:00:00Z",
				PublicMetrics: &twitter.TweetMetricsObj{
					Likes:    10,
					Retweets: 5,
					Replies:  2,
				},
			}),
		},
	}
	source := newTestSource(client, []string{"viral"})

	posts, err := source.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "big launch #ai", posts[0].Text)
	assert.Equal(t, 10, posts[0].Likes)
	assert.Equal(t, 5, posts[0].Retweets)
	assert.Equal(t, 2, posts[0].Replies)
	assert.Equal(t, 17, posts[0].Engagement())
	assert.Equal(t, "viral", posts[0].Category)
	assert.Equal(t, time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC), posts[0].CreatedAt)
}

func TestFetchAllPartialFailure(t *testing.T) {
	client := &fakeSearcher{
		responses: map[string]*twitter.TweetRecentSearchResponse{
			"trending": searchResponse(&twitter.TweetObj{Text: "#still here"}),
		},
		errs: map[string]error{
			"breaking": errors.New("timeout"),
			"viral":    errors.New("rate limited"),
		},
	}
	source := newTestSource(client, []string{"breaking", "viral", "trending"})

	posts, err := source.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "#still here", posts[0].Text)
	assert.Equal(t, []string{"breaking", "viral", "trending"}, client.calls)
}

func TestFetchAllTotalFailure(t *testing.T) {
	client := &fakeSearcher{
		errs: map[string]error{
			"breaking": errors.New("unreachable"),
			"viral":    errors.New("unreachable"),
		},
	}
	source := newTestSource(client, []string{"breaking", "viral"})

	posts, err := source.FetchAll(context.Background())

	assert.Nil(t, posts)
	require.Error(t, err)
	assert.ErrorIs(t, err, trend.ErrFetchFailed)
}

func TestFetchAllMissingMetrics(t *testing.T) {
	client := &fakeSearcher{
		responses: map[string]*twitter.TweetRecentSearchResponse{
			"viral": searchResponse(&twitter.TweetObj{Text: "#bare tweet"}),
		},
	}
	source := newTestSource(client, []string{"viral"})

	posts, err := source.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Zero(t, posts[0].Engagement())
}

func TestFetchAllEmptyResultsAreNotAnError(t *testing.T) {
	client := &fakeSearcher{
		responses: map[string]*twitter.TweetRecentSearchResponse{
			"viral": searchResponse(),
		},
	}
	source := newTestSource(client, []string{"viral"})

	posts, err := source.FetchAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestClampSampleSize(t *testing.T) {
	assert.Equal(t, 10, clampSampleSize(1))
	assert.Equal(t, 50, clampSampleSize(50))
	assert.Equal(t, 100, clampSampleSize(500))
}
