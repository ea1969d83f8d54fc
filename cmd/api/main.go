// cmd/api/main.go

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"trendwatch/internal/adapter/events"
	"trendwatch/internal/adapter/storage"
	"trendwatch/internal/adapter/twitter"
	"trendwatch/internal/config"
	"trendwatch/internal/domain/trend"
	"trendwatch/internal/logging"
	"trendwatch/internal/metrics"
	"trendwatch/internal/server"
	"trendwatch/internal/service/trendcache"
)

func main() {
	// Local .env files are a development convenience
	_ = godotenv.Load()

	logger := logging.New("trendwatch-api")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Upstream post source
	source := twitter.NewSource(twitter.Config{
		BearerToken:      cfg.Twitter.BearerToken,
		Categories:       cfg.Trend.Categories,
		PostsPerCategory: cfg.Trend.PostsPerCategory,
		Timeout:          cfg.Twitter.Timeout,
	}, logger, collector)

	var cacheOpts []trendcache.Option

	// Optional snapshot store; the service stays up without one
	store, db := initStore(ctx, cfg.Store, logger)
	if db != nil {
		defer db.Close()
	}
	if store != nil {
		cacheOpts = append(cacheOpts, trendcache.WithStore(store))
	}

	// Optional refresh event publishing
	natsConn := initNATS(cfg.NATS, logger)
	if natsConn != nil {
		defer natsConn.Close()
		publisher := events.NewPublisher(natsConn, cfg.NATS.RefreshTopic, logger)
		cacheOpts = append(cacheOpts, trendcache.WithRefreshHook(publisher.PublishRefresh))
	}

	// Trend cache
	cache := trendcache.New(source, trendcache.Config{
		TTL:         cfg.Trend.CacheTTL,
		RefreshWait: cfg.Trend.RefreshWait,
	}, logger, collector, cacheOpts...)

	// Warm start from the last persisted snapshot, when one exists
	if store != nil {
		if snap, err := store.Latest(ctx); err != nil {
			logger.WithError(err).Warn("Failed to load persisted snapshot")
		} else if snap != nil {
			cache.Warm(*snap)
			logger.WithFields(logrus.Fields{
				"snapshot":   snap.ID,
				"fetched_at": snap.FetchedAt,
			}).Info("Warm-started cache from persisted snapshot")
		}
	}

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, cache, cfg.Trend.DefaultLimit, logger, registry)

	// Start HTTP server
	go func() {
		logger.WithFields(logrus.Fields{
			"host": cfg.Server.Host,
			"port": cfg.Server.Port,
		}).Info("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("HTTP server shutdown failed")
	}
}

// initStore sets up the configured snapshot store. A store that cannot
// be reached is a warning, not a startup failure: the cache simply runs
// without persistence.
func initStore(ctx context.Context, cfg config.StoreConfig, logger *logrus.Logger) (trend.SnapshotStore, *pgxpool.Pool) {
	switch cfg.Backend {
	case config.StorePostgres:
		db, err := pgxpool.Connect(ctx, cfg.Database.DSN())
		if err != nil {
			logger.WithError(err).Warn("Postgres unavailable, continuing without snapshot store")
			return nil, nil
		}
		logger.Info("Snapshot store: postgres")
		return storage.NewPostgresStore(db), db
	case config.StoreRedis:
		store := storage.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := store.Ping(ctx); err != nil {
			logger.WithError(err).Warn("Redis unavailable, continuing without snapshot store")
			return nil, nil
		}
		logger.Info("Snapshot store: redis")
		return store, nil
	default:
		return nil, nil
	}
}

// initNATS connects to the event bus when one is configured.
func initNATS(cfg config.NATSConfig, logger *logrus.Logger) *nats.Conn {
	if cfg.URL == "" {
		return nil
	}

	conn, err := nats.Connect(cfg.URL,
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
	)
	if err != nil {
		logger.WithError(err).Warn("NATS unavailable, refresh events disabled")
		return nil
	}

	logger.WithField("url", cfg.URL).Info("Connected to NATS")
	return conn
}
