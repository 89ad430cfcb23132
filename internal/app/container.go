package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kapu/soccer-data-go/internal/api"
	"github.com/kapu/soccer-data-go/internal/config"
	"github.com/kapu/soccer-data-go/internal/constants"
	"github.com/kapu/soccer-data-go/internal/service/cache"
	"github.com/kapu/soccer-data-go/internal/service/club"
	"github.com/kapu/soccer-data-go/internal/service/database"
	"github.com/kapu/soccer-data-go/internal/service/ncaa"
	"github.com/kapu/soccer-data-go/internal/service/tds"
	"github.com/kapu/soccer-data-go/internal/source"
	"go.uber.org/zap"
)

// Container bundles the assembled services and the HTTP handler.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Cache  *cache.ResultCache
	Source *source.Client
	Clubs  *club.Service
	TDS    *tds.Service
	NCAA   *ncaa.Service
	Router http.Handler

	closers []func()
}

// Close releases infrastructure in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles every service. Infrastructure created before a failure is
// released before Build returns.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Result cache
	var store cache.Store
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		redisStore, err := cache.NewRedisStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		if err := redisStore.WaitUntilReady(ctx, constants.RedisConfig.ReadyTimeout); err != nil {
			_ = redisStore.Close()
			return nil, fmt.Errorf("redis not ready: %w", err)
		}
		store = redisStore
	default:
		store = cache.NewMemoryStore()
		logger.Info("Using in-memory result cache")
	}
	resultCache := cache.NewResultCache(store, constants.CacheKeyPrefix, logger)
	closers = append(closers, func() {
		_ = resultCache.Close()
	})

	// Club translations
	translations, err := club.DefaultTranslations()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded club translations: %w", err)
	}

	if cfg.Postgres.Enabled() {
		postgresSvc, err := database.NewPostgresService(database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
			SSLMode:  cfg.Postgres.SSLMode,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", err)
		}
		closers = append(closers, func() {
			_ = postgresSvc.Close()
		})

		repo := club.NewTranslationRepository(postgresSvc, logger)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		translations, err = club.LoadTranslations(ctx, repo, translations)
		if err != nil {
			return nil, fmt.Errorf("failed to load club translations: %w", err)
		}
	}

	// Remote sources
	sourceClient := source.NewClient(nil, source.ClientConfig{
		Timeout:           cfg.Source.Timeout,
		UserAgent:         cfg.Source.UserAgent,
		RequestsPerSecond: cfg.Source.RequestsPerSecond,
		Burst:             cfg.Source.Burst,
		MaxBodyBytes:      constants.SourceConfig.MaxBodyBytes,
		FailureThreshold:  cfg.Source.FailureThreshold,
		ResetTimeout:      cfg.Source.ResetTimeout,
	}, logger)

	clubOpts, err := club.DefaultOptions()
	if err != nil {
		return nil, err
	}
	clubOpts.Translations = translations
	clubSvc, err := club.NewService(sourceClient, resultCache, clubOpts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create club service: %w", err)
	}

	tdsOpts := tds.DefaultOptions()
	tdsOpts.DetailConcurrency = cfg.Aggregator.DetailConcurrency
	tdsOpts.DegradeOnDetailFailure = cfg.Aggregator.DegradeOnDetailFailure
	tdsOpts.LongTTL = cfg.Cache.LongTTL
	tdsOpts.ShortTTL = cfg.Cache.ShortTTL
	tdsSvc := tds.NewService(sourceClient, resultCache, clubSvc, tdsOpts, logger)

	ncaaOpts := ncaa.DefaultOptions()
	ncaaOpts.TTL = cfg.Cache.LongTTL
	ncaaSvc := ncaa.NewService(sourceClient, resultCache, ncaaOpts, logger)

	sourceClient.RegisterHosts(
		tdsOpts.BaseURL,
		clubOpts.ECNLURL,
		clubOpts.GAURL,
		ncaaOpts.RPIURL,
		ncaaOpts.CoachesDIIURL,
		fmt.Sprintf(ncaaOpts.DirectoryFormat, "I"),
	)

	handler := api.NewHandler(tdsSvc, clubSvc, ncaaSvc, func(name string, pid int) string {
		return tds.PlayerDetailsURL(constants.TopDrawerURLs.PlayerDetailsFormat, name, pid)
	}, logger)

	logger.Info("Application services assembled",
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.Bool("postgres_translations", cfg.Postgres.Enabled()),
		zap.Int("club_translations", len(translations)),
		zap.Int("detail_concurrency", tdsOpts.DetailConcurrency))

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Cache:   resultCache,
		Source:  sourceClient,
		Clubs:   clubSvc,
		TDS:     tdsSvc,
		NCAA:    ncaaSvc,
		Router:  api.NewRouter(handler, cfg.Server.AllowedOrigins, logger),
		closers: closers,
	}, nil
}
