package order

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keeps rendered order views in Redis so repeat lookups skip Postgres.
// All methods are nil-safe: a missing client simply disables caching.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a cache helper.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func cacheKey(id string) string {
	return "order:view:" + id
}

// Get loads a cached view. It reports whether the key existed.
func (c *Cache) Get(ctx context.Context, id string) (View, bool, error) {
	if c == nil || c.client == nil || id == "" {
		return View{}, false, nil
	}
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return View{}, false, nil
		}
		return View{}, false, err
	}
	var view View
	if err := json.Unmarshal(data, &view); err != nil {
		return View{}, false, err
	}
	return view, true, nil
}

// Set stores a rendered view with the configured TTL.
func (c *Cache) Set(ctx context.Context, view View) error {
	if c == nil || c.client == nil || view.ID == "" {
		return nil
	}
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(view.ID), data, c.ttl).Err()
}
