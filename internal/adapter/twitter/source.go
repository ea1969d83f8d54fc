// internal/adapter/twitter/source.go

package twitter

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"
	"github.com/sirupsen/logrus"

	"trendwatch/internal/domain/trend"
	"trendwatch/internal/metrics"
)

const sourceName = "twitter_search"

// The recent-search endpoint accepts 10..100 results per request.
const (
	minSampleSize = 10
	maxSampleSize = 100
)

// searcher is the slice of the Twitter client the source uses.
type searcher interface {
	TweetRecentSearch(ctx context.Context, query string, opts twitter.TweetRecentSearchOpts) (*twitter.TweetRecentSearchResponse, error)
}

// bearerAuthorizer supplies the app-only credential on each request.
type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// Config holds the source configuration.
type Config struct {
	BearerToken      string
	Categories       []string
	PostsPerCategory int
	Timeout          time.Duration
}

// Source samples recent posts from the Twitter search API across a
// fixed list of category queries. Upstream records are coerced into the
// domain Post schema at this boundary so the rest of the pipeline never
// sees provider-specific shapes.
type Source struct {
	client  searcher
	cfg     Config
	logger  *logrus.Logger
	metrics *metrics.Collector
}

// NewSource creates a Twitter-backed post source.
func NewSource(cfg Config, logger *logrus.Logger, collector *metrics.Collector) *Source {
	client := &twitter.Client{
		Authorizer: bearerAuthorizer{token: cfg.BearerToken},
		Client:     &http.Client{Timeout: cfg.Timeout},
		Host:       "https://api.twitter.com",
	}

	return &Source{
		client:  client,
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
	}
}

// Name returns the source label stamped on ranked rows.
func (s *Source) Name() string {
	return sourceName
}

// FetchAll queries every configured category and returns the union of
// the fetched posts. A failing category is logged and contributes
// nothing; only when every category fails does FetchAll return
// ErrFetchFailed.
func (s *Source) FetchAll(ctx context.Context) ([]trend.Post, error) {
	posts := []trend.Post{}
	failed := 0
	var lastErr error

	for _, category := range s.cfg.Categories {
		fetched, err := s.fetchCategory(ctx, category)
		if err != nil {
			failed++
			lastErr = err
			s.metrics.CategoryFetches.WithLabelValues("error").Inc()
			s.logger.WithError(&trend.CategoryError{Category: category, Err: err}).
				Warn("Category fetch failed, skipping")
			continue
		}
		s.metrics.CategoryFetches.WithLabelValues("ok").Inc()
		posts = append(posts, fetched...)
	}

	if failed == len(s.cfg.Categories) && failed > 0 {
		return nil, fmt.Errorf("%w: %v", trend.ErrFetchFailed, lastErr)
	}

	s.metrics.PostsFetched.Add(float64(len(posts)))
	return posts, nil
}

func (s *Source) fetchCategory(ctx context.Context, query string) ([]trend.Post, error) {
	opts := twitter.TweetRecentSearchOpts{
		MaxResults: clampSampleSize(s.cfg.PostsPerCategory),
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldPublicMetrics,
		},
	}

	resp, err := s.client.TweetRecentSearch(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Raw == nil {
		return nil, nil
	}

	posts := make([]trend.Post, 0, len(resp.Raw.Tweets))
	for _, tweet := range resp.Raw.Tweets {
		if tweet == nil {
			continue
		}
		posts = append(posts, coercePost(tweet, query))
	}

	return posts, nil
}

// coercePost validates and converts one upstream tweet into the fixed
// Post schema. Missing metrics default to zero rather than failing.
func coercePost(tweet *twitter.TweetObj, category string) trend.Post {
	post := trend.Post{
		Text:     tweet.Text,
		Category: category,
	}

	if tweet.PublicMetrics != nil {
		post.Likes = tweet.PublicMetrics.Likes
		post.Retweets = tweet.PublicMetrics.Retweets
		post.Replies = tweet.PublicMetrics.Replies
	}

	if tweet.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, tweet.CreatedAt); err == nil {
			post.CreatedAt = ts
		}
	}

	return post
}

func clampSampleSize(n int) int {
	if n < minSampleSize {
		return minSampleSize
	}
	if n > maxSampleSize {
		return maxSampleSize
	}
	return n
}
