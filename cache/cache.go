package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/use-agent/sitebrief/models"
)

// entry holds a cached report with its creation timestamp.
type entry struct {
	result    *models.ReportResult
	createdAt time.Time
}

// Cache is an in-memory cache for generated reports, keyed by seed URL.
// A full report run costs a crawl, a search query, and an LLM call, so
// repeated requests for the same site within the TTL are served from here.
// Safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache holding up to maxEntries reports for ttl each.
// A background goroutine evicts expired entries every 5 minutes.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}

	go c.cleanupLoop()
	return c
}

// Key derives the cache key from the seed URL.
func Key(seedURL string) string {
	sum := sha256.Sum256([]byte(seedURL))
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached report if present and younger than the TTL.
func (c *Cache) Get(key string) (*models.ReportResult, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return nil, false
	}
	return e.result, true
}

// Set stores a report. At capacity a random entry is evicted to make
// room (map iteration order is random in Go).
func (c *Cache) Set(key string, result *models.ReportResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		result:    result,
		createdAt: time.Now(),
	}
}

// cleanupLoop evicts expired entries every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
