package geo

import (
	"sync"
	"time"
)

// regionCache remembers resolved regions so repeat visitors do not re-query
// the external providers. Entries expire after a TTL and are pruned lazily.
type regionCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	region  string
	addedAt time.Time
}

func newRegionCache(ttl time.Duration) *regionCache {
	return &regionCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *regionCache) Get(ip string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[ip]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Since(entry.addedAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, ip)
		c.mu.Unlock()
		return "", false
	}
	return entry.region, true
}

func (c *regionCache) Set(ip, region string) {
	c.mu.Lock()
	c.entries[ip] = cacheEntry{region: region, addedAt: time.Now()}
	c.mu.Unlock()
}
