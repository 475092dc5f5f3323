package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps cached data with its expiry.
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// TTLCache is a small LRU with per-entry expiry, used to hold recently
// verified admin identities so a burst of moderation actions does not call
// the identity provider once per click.
type TTLCache struct {
	lruCache *lru.Cache[string, CacheItem]
}

func NewTTLCache(size int) (*TTLCache, error) {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		return nil, err
	}
	return &TTLCache{lruCache: l}, nil
}

// Set stores data under key for the given TTL.
func (c *TTLCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get returns the cached data, or nil if absent or expired.
func (c *TTLCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}
	return val.Data
}

// Delete removes a single entry.
func (c *TTLCache) Delete(key string) {
	c.lruCache.Remove(key)
}
