package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripforge/tripforge/internal/storage"
)

const defaultTTL = time.Hour

// Cache wraps a Redis client and provides typed get/set/delete for itinerary records.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with a 1-hour TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// ItineraryKey is the cache key for an itinerary as seen by its owner.
// The key is scoped to the user so a hit never leaks across accounts.
func ItineraryKey(userID, id int) string {
	return "itinerary:" + strconv.Itoa(userID) + ":" + strconv.Itoa(id)
}

// ShareKey is the cache key for a public itinerary by share code.
func ShareKey(code string) string {
	return "shared:" + code
}

// Get retrieves an itinerary from cache.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) Get(ctx context.Context, key string) (*storage.Itinerary, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	var it storage.Itinerary
	if err := json.Unmarshal([]byte(val), &it); err != nil {
		return nil, fmt.Errorf("unmarshaling cached itinerary %s: %w", key, err)
	}

	return &it, nil
}

// Set stores an itinerary in cache with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, it *storage.Itinerary) error {
	if it == nil {
		return nil
	}

	b, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("marshaling itinerary for %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}

	return nil
}

// Delete removes the cached entries for the given keys.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete %v: %w", keys, err)
	}
	return nil
}
