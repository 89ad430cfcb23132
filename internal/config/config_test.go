package config

import (
	"testing"
	"time"

	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, CacheBackendMemory, cfg.Cache.Backend)
	assert.Equal(t, constants.CacheTTL.ConferenceCommit, cfg.Cache.LongTTL)
	assert.True(t, cfg.Aggregator.DegradeOnDetailFailure)
	assert.False(t, cfg.Postgres.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test,")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("CACHE_SHORT_TTL", "90s")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("AGGREGATOR_DETAIL_CONCURRENCY", "3")
	t.Setenv("AGGREGATOR_DEGRADE_ON_DETAIL_FAILURE", "false")
	t.Setenv("SOURCE_REQUESTS_PER_SECOND", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, CacheBackendRedis, cfg.Cache.Backend)
	assert.Equal(t, 90*time.Second, cfg.Cache.ShortTTL)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.True(t, cfg.Postgres.Enabled())
	assert.Equal(t, 3, cfg.Aggregator.DetailConcurrency)
	assert.False(t, cfg.Aggregator.DegradeOnDetailFailure)
	assert.InDelta(t, 2.5, cfg.Source.RequestsPerSecond, 1e-9)
}

func TestMalformedValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("REDIS_PORT", "sixty")
	t.Setenv("CACHE_LONG_TTL", "a week")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, constants.CacheTTL.ConferenceCommit, cfg.Cache.LongTTL)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown cache backend", "CACHE_BACKEND", "memcached"},
		{"non-positive ttl", "CACHE_SHORT_TTL", "0s"},
		{"non-positive concurrency", "AGGREGATOR_DETAIL_CONCURRENCY", "0"},
		{"non-positive circuit threshold", "SOURCE_CIRCUIT_THRESHOLD", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
