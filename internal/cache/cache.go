package cache

import (
	"sync"
	"time"

	"github.com/JustJay7/nyaya-mitra/internal/database"
	"github.com/patrickmn/go-cache"
)

type Cache interface {
	Get(id string) (*database.Case, bool)
	Set(value *database.Case)
	Delete(id string)
	Clear()
	Stats() CacheStats
}

type CacheStats struct {
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	Size       int       `json:"size"`
	LastAccess time.Time `json:"last_access"`
}

// LRUCache keeps copies of recently touched cases keyed by id.
type LRUCache struct {
	cache   *cache.Cache
	mu      sync.Mutex
	stats   CacheStats
	maxSize int
}

func NewCache(maxSize int, ttl time.Duration) Cache {
	return &LRUCache{
		cache:   cache.New(ttl, ttl*2),
		maxSize: maxSize,
	}
}

func (c *LRUCache) Get(id string) (*database.Case, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.LastAccess = time.Now()

	if data, found := c.cache.Get(id); found {
		if stored, ok := data.(database.Case); ok {
			c.stats.Hits++
			return &stored, true
		}
	}

	c.stats.Misses++
	return nil, false
}

// Set stores a copy so callers cannot mutate cached state.
func (c *LRUCache) Set(value *database.Case) {
	if value == nil || value.ID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache.Get(value.ID); !exists && c.cache.ItemCount() >= c.maxSize {
		c.removeOldest()
	}

	c.cache.Set(value.ID, *value, cache.DefaultExpiration)
}

func (c *LRUCache) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Delete(id)
}

func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.stats = CacheStats{}
}

func (c *LRUCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = c.cache.ItemCount()
	return stats
}

// removeOldest evicts the entry closest to expiry, which is the one set
// longest ago since every entry shares the same TTL.
func (c *LRUCache) removeOldest() {
	items := c.cache.Items()
	if len(items) == 0 {
		return
	}

	var oldestKey string
	var oldestExpiration int64

	for key, item := range items {
		if oldestKey == "" || item.Expiration < oldestExpiration {
			oldestKey = key
			oldestExpiration = item.Expiration
		}
	}

	c.cache.Delete(oldestKey)
}
