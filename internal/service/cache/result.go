// Package cache memoizes expensive public operations behind a pluggable
// Store. Values are stored as JSON under keys derived from the operation
// name and its full argument list.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Store is the backing key/value store for cached results.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
	Purge(ctx context.Context, pattern string) (int64, error)
	Close() error
}

// ResultCache applies get-or-compute over a Store. Store failures are logged
// and treated as misses; they never fail the operation being cached.
type ResultCache struct {
	store  Store
	prefix string
	logger *zap.Logger
	group  singleflight.Group
}

func NewResultCache(store Store, prefix string, logger *zap.Logger) *ResultCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultCache{store: store, prefix: prefix, logger: logger}
}

// Key joins the prefix, the operation and every argument. Arguments are
// path-escaped so "a:b","c" and "a","b:c" produce different keys.
func (rc *ResultCache) Key(op string, args ...any) string {
	parts := make([]string, 0, len(args)+2)
	if rc.prefix != "" {
		parts = append(parts, rc.prefix)
	}
	parts = append(parts, op)
	for _, arg := range args {
		parts = append(parts, url.PathEscape(fmt.Sprint(arg)))
	}
	return strings.Join(parts, ":")
}

// Lookup decodes a live entry into dest and reports whether there was one.
func (rc *ResultCache) Lookup(ctx context.Context, key string, dest any) bool {
	data, ok, err := rc.store.Get(ctx, key)
	if err != nil {
		rc.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		rc.logger.Warn("Cache entry undecodable, recomputing", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Save stores value under key for ttl.
func (rc *ResultCache) Save(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		rc.logger.Error("Cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := rc.store.Set(ctx, key, data, ttl); err != nil {
		rc.logger.Warn("Cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every entry of one operation, e.g. after a roster change.
func (rc *ResultCache) Invalidate(ctx context.Context, op string) (int64, error) {
	return rc.store.Purge(ctx, rc.Key(op)+":*")
}

func (rc *ResultCache) Close() error {
	return rc.store.Close()
}

// Remember returns the live entry for key or computes, stores and returns a
// fresh value. An error from fn is returned and nothing is stored. Concurrent
// misses on one key share a single computation.
func Remember[T any](ctx context.Context, rc *ResultCache, key string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	return RememberFor(ctx, rc, key, func(ctx context.Context) (T, time.Duration, error) {
		value, err := fn(ctx)
		return value, ttl, err
	})
}

// RememberFor is Remember with the expiry chosen by fn per computed value.
// A non-positive ttl returns the value without storing it.
//
// The shared computation runs detached from any one caller's cancellation;
// each caller stops waiting when its own ctx is done.
func RememberFor[T any](ctx context.Context, rc *ResultCache, key string, fn func(context.Context) (T, time.Duration, error)) (T, error) {
	var value T
	if rc.Lookup(ctx, key, &value) {
		rc.logger.Debug("Cache hit", zap.String("key", key))
		return value, nil
	}
	if err := ctx.Err(); err != nil {
		return value, err
	}

	shared := context.WithoutCancel(ctx)
	ch := rc.group.DoChan(key, func() (any, error) {
		var cached T
		if rc.Lookup(shared, key, &cached) {
			return cached, nil
		}

		computed, ttl, err := fn(shared)
		if err != nil {
			return nil, err
		}
		if ttl > 0 {
			rc.Save(shared, key, computed, ttl)
		}
		return computed, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}
