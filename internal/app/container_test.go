package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/kapu/soccer-data-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Addr: ":0", AllowedOrigins: []string{"*"}},
		Source: config.SourceConfig{
			Timeout:          time.Second,
			UserAgent:        "soccer-test",
			Burst:            1,
			FailureThreshold: 3,
			ResetTimeout:     time.Minute,
		},
		Cache:      config.CacheConfig{Backend: config.CacheBackendMemory, LongTTL: time.Hour, ShortTTL: time.Minute},
		Aggregator: config.AggregatorConfig{DetailConcurrency: 2, DegradeOnDetailFailure: true},
	}
}

func TestBuildWithMemoryCache(t *testing.T) {
	container, err := Build(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer container.Close()

	assert.NotNil(t, container.TDS)
	assert.NotNil(t, container.Clubs)
	assert.NotNil(t, container.NCAA)
	assert.Greater(t, container.Clubs.Translator().Len(), 0)

	rec := httptest.NewRecorder()
	container.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildWithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.Cache.Backend = config.CacheBackendRedis
	cfg.Redis = config.RedisConfig{Host: mr.Host(), Port: mustPort(t, mr)}

	container, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	container.Close()
}

func TestBuildRejectsMissingDependencies(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(context.Background(), testConfig(), nil)
	assert.Error(t, err)
}

func mustPort(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	return port
}
