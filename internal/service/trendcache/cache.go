// internal/service/trendcache/cache.go

package trendcache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"trendwatch/internal/domain/trend"
	"trendwatch/internal/metrics"
	"trendwatch/internal/service/scoring"
)

const refreshKey = "refresh"

// Config contains the cache policy knobs.
type Config struct {
	// TTL is the age past which a snapshot counts as stale.
	TTL time.Duration

	// RefreshWait bounds how long a get-request with a stale entry
	// blocks on an in-flight refresh before falling back to the stale
	// snapshot. This is the documented concurrency policy: waiters
	// block briefly, then serve stale to keep tail latency bounded.
	RefreshWait time.Duration
}

// RefreshHook runs after every successful refresh, outside the lock.
type RefreshHook func(snap trend.Snapshot)

// Cache owns the single process-wide snapshot. Refreshes are
// deduplicated through a singleflight group so at most one
// fetch-and-rank cycle runs at a time; a completed snapshot is an
// immutable value swapped in under the lock, so reads never see a
// partial update.
type Cache struct {
	source  trend.Source
	cfg     Config
	logger  *logrus.Logger
	metrics *metrics.Collector
	store   trend.SnapshotStore
	hooks   []RefreshHook

	mu    sync.RWMutex
	entry *trend.Snapshot
	sf    singleflight.Group

	now func() time.Time
}

// Option configures optional cache collaborators.
type Option func(*Cache)

// WithStore persists snapshots after each successful refresh and is
// the warm-start source at boot.
func WithStore(store trend.SnapshotStore) Option {
	return func(c *Cache) { c.store = store }
}

// WithRefreshHook registers a callback invoked after each successful
// refresh.
func WithRefreshHook(hook RefreshHook) Option {
	return func(c *Cache) { c.hooks = append(c.hooks, hook) }
}

// New creates a cache in the Empty state.
func New(source trend.Source, cfg Config, logger *logrus.Logger, collector *metrics.Collector, opts ...Option) *Cache {
	c := &Cache{
		source:  source,
		cfg:     cfg,
		logger:  logger,
		metrics: collector,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is a served snapshot plus its disposition.
type Result struct {
	Snapshot trend.Snapshot

	// Cached is true when the snapshot was served without a fetch
	// completing on behalf of this call.
	Cached bool

	// Stale is true when the served snapshot is older than the TTL.
	Stale bool
}

// Get implements the get-or-refresh path. Fresh entries are served
// directly. An empty cache refreshes synchronously and surfaces the
// error when that first fetch fails. A stale entry triggers a refresh
// and blocks up to RefreshWait; on timeout or refresh failure the stale
// entry is served instead.
func (c *Cache) Get(ctx context.Context) (Result, error) {
	entry := c.current()
	if entry != nil && entry.Age(c.now()) < c.cfg.TTL {
		c.metrics.CacheServes.WithLabelValues("fresh").Inc()
		return Result{Snapshot: *entry, Cached: true}, nil
	}

	ch := c.sf.DoChan(refreshKey, func() (interface{}, error) {
		return c.refresh()
	})

	if entry == nil {
		res := <-ch
		if res.Err != nil {
			return Result{}, res.Err
		}
		return Result{Snapshot: res.Val.(trend.Snapshot)}, nil
	}

	timer := time.NewTimer(c.cfg.RefreshWait)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.Err != nil {
			c.logger.WithError(res.Err).Warn("Refresh failed, serving stale snapshot")
			c.metrics.CacheServes.WithLabelValues("stale").Inc()
			return Result{Snapshot: *entry, Cached: true, Stale: true}, nil
		}
		return Result{Snapshot: res.Val.(trend.Snapshot)}, nil
	case <-timer.C:
		c.metrics.CacheServes.WithLabelValues("stale").Inc()
		return Result{Snapshot: *entry, Cached: true, Stale: true}, nil
	case <-ctx.Done():
		c.metrics.CacheServes.WithLabelValues("stale").Inc()
		return Result{Snapshot: *entry, Cached: true, Stale: true}, nil
	}
}

// ForceRefresh runs a refresh regardless of TTL and blocks for its
// outcome. A concurrent in-flight refresh is joined, not duplicated.
// On failure the previous snapshot is left untouched.
func (c *Cache) ForceRefresh(ctx context.Context) (trend.Snapshot, error) {
	ch := c.sf.DoChan(refreshKey, func() (interface{}, error) {
		return c.refresh()
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return trend.Snapshot{}, res.Err
		}
		return res.Val.(trend.Snapshot), nil
	case <-ctx.Done():
		return trend.Snapshot{}, ctx.Err()
	}
}

// State reports the cache lifecycle state and the current entry's age.
// The age is meaningful only when the state is not Empty.
func (c *Cache) State() (trend.CacheState, time.Duration) {
	entry := c.current()
	if entry == nil {
		return trend.StateEmpty, 0
	}
	age := entry.Age(c.now())
	if age < c.cfg.TTL {
		return trend.StateFresh, age
	}
	return trend.StateStale, age
}

// Warm seeds an empty cache with a previously persisted snapshot. The
// TTL still applies, so an old snapshot starts out stale.
func (c *Cache) Warm(snap trend.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil {
		c.entry = &snap
	}
}

func (c *Cache) current() *trend.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entry
}

// refresh runs one fetch-and-rank cycle. It deliberately uses a
// detached context: the cycle is shared between callers through the
// singleflight group, so no single caller's cancellation may abort it.
// The upstream client's own timeout bounds a hung provider.
func (c *Cache) refresh() (trend.Snapshot, error) {
	start := time.Now()
	cycle := uuid.New().String()

	posts, err := c.source.FetchAll(context.Background())
	if err != nil {
		c.metrics.RefreshTotal.WithLabelValues("error").Inc()
		return trend.Snapshot{}, err
	}

	stats := scoring.Aggregate(posts)
	fetchedAt := c.now()
	ranked := scoring.Rank(stats, len(stats), c.source.Name(), fetchedAt)

	snap := trend.Snapshot{
		ID:        cycle,
		Trends:    ranked,
		FetchedAt: fetchedAt,
	}

	c.mu.Lock()
	c.entry = &snap
	c.mu.Unlock()

	c.metrics.RefreshTotal.WithLabelValues("ok").Inc()
	c.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	c.logger.WithFields(logrus.Fields{
		"cycle":  cycle,
		"posts":  len(posts),
		"trends": len(ranked),
	}).Info("Trend snapshot refreshed")

	if c.store != nil {
		if err := c.store.Save(context.Background(), snap); err != nil {
			c.logger.WithError(err).Warn("Failed to persist snapshot")
		}
	}
	for _, hook := range c.hooks {
		hook(snap)
	}

	return snap, nil
}
