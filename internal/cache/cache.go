// Package cache is a small redis-backed JSON cache for catalog lookups.
// Every method is best-effort: redis being down or a nil *Cache behaves like
// a permanent miss, never like an error.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Key builds a namespaced cache key from a 64-bit content hash of the
// normalized parts. Normalization keeps equivalent queries ("Go  Basics",
// "go basics") on one key.
func Key(namespace string, parts ...string) string {
	h := xxhash.New()
	for _, p := range parts {
		_, _ = h.WriteString(strings.ToLower(strings.Join(strings.Fields(p), " ")))
		_, _ = h.WriteString("\x00")
	}
	return fmt.Sprintf("%s:%016x", namespace, h.Sum64())
}

// GetJSON loads key into v and reports whether it was a hit.
func (c *Cache) GetJSON(ctx context.Context, key string, v any) bool {
	if c == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("playlist-forge: cache: decode %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores v under key with the cache's TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("playlist-forge: cache: encode %s: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("playlist-forge: cache: set %s: %v", key, err)
	}
}
