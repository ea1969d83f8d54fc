// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends for computed snapshots.
const (
	StoreNone     = "none"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Twitter     TwitterConfig
	Trend       TrendConfig
	Store       StoreConfig
	NATS        NATSConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// TwitterConfig holds upstream provider configuration
type TwitterConfig struct {
	BearerToken string
	Timeout     time.Duration
}

// TrendConfig holds trend pipeline and cache configuration
type TrendConfig struct {
	CacheTTL         time.Duration
	PostsPerCategory int
	Categories       []string
	DefaultLimit     int
	RefreshWait      time.Duration
}

// StoreConfig selects the optional snapshot store
type StoreConfig struct {
	Backend  string
	Database DatabaseConfig
	Redis    RedisConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN builds a pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// RedisConfig holds redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NATSConfig holds NATS configuration. An empty URL disables event
// publishing.
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
	RefreshTopic   string
}

// defaultCategories mirrors the upstream search queries the collector
// was built around.
var defaultCategories = []string{
	"(trending OR viral OR breaking) -is:retweet lang:en",
	"#breaking -is:retweet lang:en",
	"what's happening -is:retweet lang:en",
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Twitter: TwitterConfig{
			BearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
			Timeout:     getEnvAsDuration("TWITTER_TIMEOUT", 10*time.Second),
		},
		Trend: TrendConfig{
			CacheTTL:         getEnvAsDuration("TREND_CACHE_TTL", time.Hour),
			PostsPerCategory: getEnvAsInt("TREND_POSTS_PER_CATEGORY", 100),
			Categories:       getEnvAsSlice("TREND_CATEGORIES", defaultCategories),
			DefaultLimit:     getEnvAsInt("TREND_DEFAULT_LIMIT", 20),
			RefreshWait:      getEnvAsDuration("TREND_REFRESH_WAIT", 5*time.Second),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", StoreNone),
			Database: DatabaseConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     getEnvAsInt("DB_PORT", 5432),
				User:     getEnv("DB_USER", "postgres"),
				Password: getEnv("DB_PASSWORD", "postgres"),
				Database: getEnv("DB_NAME", "trendwatch"),
				SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			},
			Redis: RedisConfig{
				Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
				Password: getEnv("REDIS_PASSWORD", ""),
				DB:       getEnvAsInt("REDIS_DB", 0),
			},
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", ""),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
			RefreshTopic:   getEnv("NATS_REFRESH_TOPIC", "trends.refreshed"),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Twitter.BearerToken == "" && config.Environment != "development" {
		return fmt.Errorf("TWITTER_BEARER_TOKEN must be set in non-development environments")
	}

	if config.Trend.PostsPerCategory <= 0 {
		return fmt.Errorf("TREND_POSTS_PER_CATEGORY must be positive")
	}

	if config.Trend.DefaultLimit <= 0 {
		return fmt.Errorf("TREND_DEFAULT_LIMIT must be positive")
	}

	if len(config.Trend.Categories) == 0 {
		return fmt.Errorf("TREND_CATEGORIES must not be empty")
	}

	switch config.Store.Backend {
	case StoreNone, StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("unsupported store backend: %s", config.Store.Backend)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
