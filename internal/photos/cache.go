// ABOUTME: In-process read cache for photo blobs backed by freecache.
// ABOUTME: A nil *Cache is valid and caches nothing.
package photos

import (
	"github.com/coocood/freecache"
)

// minCacheBytes is freecache's own lower bound.
const minCacheBytes = 512 * 1024

// Cache keeps recently read photo values in memory.
type Cache struct {
	c      *freecache.Cache
	ttlSec int
}

// NewCache creates a cache of roughly sizeMB megabytes. Entries expire
// after ttlSec seconds; zero means they never expire.
func NewCache(sizeMB, ttlSec int) *Cache {
	size := sizeMB * 1024 * 1024
	if size < minCacheBytes {
		size = minCacheBytes
	}
	return &Cache{c: freecache.NewCache(size), ttlSec: ttlSec}
}

// Get returns a cached value.
func (c *Cache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	v, err := c.c.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return v, true
}

// Set stores a value. Values larger than freecache's entry limit are skipped.
func (c *Cache) Set(key string, value []byte) {
	if c == nil {
		return
	}
	_ = c.c.Set([]byte(key), value, c.ttlSec)
}

// Invalidate drops one key.
func (c *Cache) Invalidate(key string) {
	if c == nil {
		return
	}
	c.c.Del([]byte(key))
}

// Clear drops every entry.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.c.Clear()
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.c.HitCount(), c.c.MissCount()
}
