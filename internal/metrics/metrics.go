package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the service's Prometheus metrics.
type Collector struct {
	RefreshTotal    *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
	CacheServes     *prometheus.CounterVec
	CategoryFetches *prometheus.CounterVec
	PostsFetched    prometheus.Counter
}

// NewCollector registers and returns the service metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		RefreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendwatch_refresh_total",
				Help: "Refresh cycles by outcome",
			},
			[]string{"outcome"},
		),
		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "trendwatch_refresh_duration_seconds",
				Help:    "Duration of fetch-and-rank cycles",
				Buckets: prometheus.DefBuckets,
			},
		),
		CacheServes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendwatch_cache_serves_total",
				Help: "Trend requests served by cache disposition",
			},
			[]string{"disposition"},
		),
		CategoryFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendwatch_category_fetches_total",
				Help: "Per-category upstream queries by outcome",
			},
			[]string{"outcome"},
		),
		PostsFetched: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "trendwatch_posts_fetched_total",
				Help: "Posts returned by the upstream provider",
			},
		),
	}

	reg.MustRegister(
		c.RefreshTotal,
		c.RefreshDuration,
		c.CacheServes,
		c.CategoryFetches,
		c.PostsFetched,
	)

	return c
}
