package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/soccer-data-go/internal/constants"
)

type Config struct {
	Server     ServerConfig
	Source     SourceConfig
	Cache      CacheConfig
	Redis      RedisConfig
	Postgres   PostgresConfig
	Aggregator AggregatorConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Addr            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type SourceConfig struct {
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
	FailureThreshold  int
	ResetTimeout      time.Duration
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type CacheConfig struct {
	Backend  string
	LongTTL  time.Duration
	ShortTTL time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// PostgresConfig is optional; an empty Host disables the translation table.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

type AggregatorConfig struct {
	DetailConcurrency      int
	DegradeOnDetailFailure bool
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("SERVER_ADDR", ":8080"),
			AllowedOrigins:  parseCommaSeparated(getEnv("CORS_ALLOWED_ORIGINS", "*")),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Source: SourceConfig{
			Timeout:           getEnvDuration("SOURCE_TIMEOUT", constants.SourceConfig.Timeout),
			UserAgent:         getEnv("SOURCE_USER_AGENT", constants.SourceConfig.UserAgent),
			RequestsPerSecond: getEnvFloat("SOURCE_REQUESTS_PER_SECOND", constants.SourceConfig.RequestsPerSecond),
			Burst:             getEnvInt("SOURCE_BURST", constants.SourceConfig.Burst),
			FailureThreshold:  getEnvInt("SOURCE_CIRCUIT_THRESHOLD", constants.CircuitBreakerConfig.FailureThreshold),
			ResetTimeout:      getEnvDuration("SOURCE_CIRCUIT_RESET", constants.CircuitBreakerConfig.ResetTimeout),
		},
		Cache: CacheConfig{
			Backend:  strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendMemory)),
			LongTTL:  getEnvDuration("CACHE_LONG_TTL", constants.CacheTTL.ConferenceCommit),
			ShortTTL: getEnvDuration("CACHE_SHORT_TTL", constants.CacheTTL.PlayerDetails),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", ""),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "soccer"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "soccer"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Aggregator: AggregatorConfig{
			DetailConcurrency:      getEnvInt("AGGREGATOR_DETAIL_CONCURRENCY", constants.AggregatorConfig.PlayerDetailConcurrency),
			DegradeOnDetailFailure: getEnvBool("AGGREGATOR_DEGRADE_ON_DETAIL_FAILURE", true),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}
	if c.Cache.Backend != CacheBackendMemory && c.Cache.Backend != CacheBackendRedis {
		return fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheBackendMemory, CacheBackendRedis, c.Cache.Backend)
	}
	if c.Cache.LongTTL <= 0 || c.Cache.ShortTTL <= 0 {
		return fmt.Errorf("CACHE_LONG_TTL and CACHE_SHORT_TTL must be positive")
	}
	if c.Source.Timeout <= 0 {
		return fmt.Errorf("SOURCE_TIMEOUT must be positive")
	}
	if c.Source.FailureThreshold <= 0 {
		return fmt.Errorf("SOURCE_CIRCUIT_THRESHOLD must be positive")
	}
	if c.Aggregator.DetailConcurrency <= 0 {
		return fmt.Errorf("AGGREGATOR_DETAIL_CONCURRENCY must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90s", "168h").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
