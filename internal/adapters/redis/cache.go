package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

const keyPrefix = "hotel_booking:"

// Cache stores JSON-encoded read models under a fixed key prefix. Every call
// is counted under the "redis" cache label; failed round trips count as
// "error".
type Cache struct{ c *redis.Client }

var _ domain.Cache = (*Cache)(nil)

func New(addr, pass string, db int) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

func NewWithClient(c *redis.Client) *Cache { return &Cache{c: c} }

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) observe(event string, err error) error {
	if err != nil {
		observability.ObserveCache("redis", "error")
		return fmt.Errorf("redis %s: %w", event, err)
	}
	observability.ObserveCache("redis", event)
	return nil
}

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.c.Get(ctx, keyPrefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, r.observe("miss", nil)
	case err != nil:
		return false, r.observe("get", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A payload from an older schema is treated as a miss.
		return false, r.observe("miss", nil)
	}
	return true, r.observe("hit", nil)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.observe("set", r.c.Set(ctx, keyPrefix+key, raw, time.Duration(ttlSec)*time.Second).Err())
}

func (r *Cache) Del(ctx context.Context, key string) error {
	return r.observe("del", r.c.Del(ctx, keyPrefix+key).Err())
}
