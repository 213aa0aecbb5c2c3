package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"escolas-map/logger"
	"escolas-map/metrics"
	"escolas-map/models"

	"github.com/go-redis/redis/v8"
	"github.com/oklog/ulid/v2"
)

const markersKeyPrefix = "escolas:markers:" // String: escolas:markers:{version}:{palette}:{uf}:{regional}:{subject} -> GeoJSON

// MarkerCache stores rendered marker payloads per snapshot and filter
type MarkerCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// MarkersKey builds the cache key for one filter selection of one snapshot.
// A new snapshot version never reuses entries of the previous one.
func MarkersKey(version ulid.ULID, palette string, f models.Filter) string {
	return markersKeyPrefix + strings.Join([]string{
		version.String(), palette, f.State, f.Regional, f.Subject,
	}, ":")
}

// RedisCache keeps marker payloads in Redis with a TTL
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache creates a RedisCache
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

// Get returns the cached value and whether it was present
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheMissesTotal.Inc()
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s from Redis: %w", key, err)
	}
	metrics.CacheHitsTotal.Inc()
	return val, true, nil
}

// Set stores value under key for the cache TTL
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.Client.Set(ctx, key, value, c.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set %s in Redis: %w", key, err)
	}
	return nil
}

// NoopCache never stores anything; used when Redis is not configured
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NoopCache) Set(context.Context, string, []byte) error { return nil }

// InitializeRedisClient creates a Redis client and checks the connection
func InitializeRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", addr, err)
	}

	logger.L().Info("connected to redis", "addr", addr, "db", db)
	return rdb, nil
}
