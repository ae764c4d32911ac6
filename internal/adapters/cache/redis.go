package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"devevent/internal/domain"
)

const (
	keyPrefix  = "devevent:event:"
	DefaultTTL = time.Hour
)

// Options configures the Redis connection backing the event cache.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// store is the subset of redis.Cmdable used by EventCache.
type store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// EventCache caches events by slug as JSON documents with a fixed TTL.
type EventCache struct {
	rdb store
	ttl time.Duration
}

// NewRedisClient returns a client for opts. No connection is made until first use.
func NewRedisClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// NewEventCache returns a domain.EventCache on top of rdb.
func NewEventCache(rdb store, ttl time.Duration) *EventCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &EventCache{rdb: rdb, ttl: ttl}
}

func key(slug string) string {
	return keyPrefix + slug
}

func (c *EventCache) Get(ctx context.Context, slug string) (*domain.Event, bool, error) {
	raw, err := c.rdb.Get(ctx, key(slug)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var e domain.Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false, fmt.Errorf("decode cached event: %w", err)
	}
	return &e, true, nil
}

func (c *EventCache) Set(ctx context.Context, e *domain.Event) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := c.rdb.Set(ctx, key(e.Slug), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *EventCache) Delete(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(slugs))
	for _, s := range slugs {
		keys = append(keys, key(s))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var _ domain.EventCache = (*EventCache)(nil)
