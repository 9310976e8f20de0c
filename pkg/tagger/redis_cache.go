package tagger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/codeready-toolchain/contractmask/pkg/config"
	"github.com/codeready-toolchain/contractmask/pkg/models"
)

// RedisCache is a Cache shared between service replicas.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed cache from cfg. The connection is
// established on first use.
func NewRedisCache(cfg *config.TaggerCacheConfig) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	return &RedisCache{client: rdb, prefix: cfg.KeyPrefix, ttl: cfg.TTL}
}

// Ping checks connectivity.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get implements Cache.
func (r *RedisCache) Get(ctx context.Context, key string) ([]models.EntitySpan, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var spans []models.EntitySpan
	if err := json.Unmarshal(val, &spans); err != nil {
		return nil, false, fmt.Errorf("decode cached spans: %w", err)
	}
	return spans, true, nil
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, key string, spans []models.EntitySpan) error {
	data, err := json.Marshal(spans)
	if err != nil {
		return fmt.Errorf("failed to marshal spans: %w", err)
	}
	return r.client.Set(ctx, r.prefix+key, data, r.ttl).Err()
}

// Close closes the connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
