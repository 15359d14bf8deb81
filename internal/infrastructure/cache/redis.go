package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"jobradar/internal/config"
	"jobradar/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	SearchPrefix = "jobs:search:"
	LockPrefix   = "jobs:lock:"
	StatsKey     = "jobs:stats"
	TrendPrefix  = "skills:trend:"

	defaultTTL = 600 * time.Second
)

// Redis is a JSON cache that degrades to a no-op when Redis cannot be
// reached, so callers always fall through to the database.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(ctx context.Context, cfg config.RedisConfig, log logger.Logger) *Redis {
	log = logger.OrNop(log)
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, bypassing cache", map[string]interface{}{
			"addr":  cfg.Addr(),
			"error": err,
		})
		_ = client.Close()
		return &Redis{ttl: cfg.TTL, log: log}
	}

	log.Info("redis connected", map[string]interface{}{"addr": cfg.Addr()})
	return &Redis{client: client, ttl: cfg.TTL, log: log}
}

// NewRedisFromClient wraps an existing client. A nil client yields a
// disabled cache.
func NewRedisFromClient(client *redis.Client, ttl time.Duration, log logger.Logger) *Redis {
	return &Redis{client: client, ttl: ttl, log: logger.OrNop(log)}
}

// Client exposes the underlying connection, nil when Redis is unavailable.
func (r *Redis) Client() *redis.Client {
	if r == nil {
		return nil
	}
	return r.client
}

func (r *Redis) Available() bool {
	return !r.isUnavailable()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.log == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.log.Warn("redis error, bypassing cache", map[string]interface{}{"error": err})
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.isUnavailable() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.isUnavailable() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}

	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil {
			r.log.Warn("redis delete failed", map[string]interface{}{
				"key":     k,
				"pattern": pattern,
				"error":   err,
			})
		}
	}
	return iter.Err()
}

// InvalidateListings drops every cached view derived from job listings.
func (r *Redis) InvalidateListings(ctx context.Context) error {
	if r.isUnavailable() {
		return nil
	}

	var firstErr error
	for _, p := range []string{SearchPrefix + "*", LockPrefix + "*", TrendPrefix + "*"} {
		if err := r.DeleteByPattern(ctx, p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := r.Delete(ctx, StatsKey); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		r.warnUnavailableOnce(err)
		return false, err
	}
	return ok, nil
}
