// Package cache provides replay caches for the mutation engine. The cache
// is advisory: it is populated after a successful commit and a miss always
// falls through to the movement table, which stays the retry authority.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appinv "github.com/wms/backend/internal/application/inventory"
)

const defaultReplayKeyPrefix = "wms:replay:"

// RedisReplayCache implements ReplayCache using Redis. Suitable for
// multi-instance deployments where replay state must be shared.
type RedisReplayCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisReplayCache creates a Redis-backed replay cache
func NewRedisReplayCache(cfg RedisConfig, ttl time.Duration) (*RedisReplayCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReplayCache{
		client:    client,
		keyPrefix: defaultReplayKeyPrefix,
		ttl:       ttl,
	}, nil
}

// NewRedisReplayCacheWithClient creates a cache over an existing Redis
// client. Useful for tests or when sharing a client across components.
func NewRedisReplayCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisReplayCache {
	if keyPrefix == "" {
		keyPrefix = defaultReplayKeyPrefix
	}
	return &RedisReplayCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Get returns the cached response for the key, if any. Errors are treated
// as misses so a Redis outage degrades to table lookups instead of failing
// mutations.
func (c *RedisReplayCache) Get(ctx context.Context, key string) (*appinv.MovementResponse, bool) {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var resp appinv.MovementResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, false
	}
	resp.Replayed = true
	return &resp, true
}

// Set stores the committed response under the key. Failures are swallowed
// for the same reason Get treats errors as misses.
func (c *RedisReplayCache) Set(ctx context.Context, key string, resp *appinv.MovementResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.keyPrefix+key, payload, c.ttl)
}

// Close closes the Redis client
func (c *RedisReplayCache) Close() error {
	return c.client.Close()
}

var _ appinv.ReplayCache = (*RedisReplayCache)(nil)
