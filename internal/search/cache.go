package search

import (
	"sort"
	"sync"
	"time"
)

// SortByScore orders rows by descending relevance score, stable for ties.
func SortByScore(rows []Result) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
}

// Cache is a TTL-based in-memory cache of query results, scoped to one run.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	rows      []Result
	fetchedAt time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *Cache) Get(query string) ([]Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[query]
	if !ok || time.Since(entry.fetchedAt) > c.ttl {
		return nil, false
	}
	return entry.rows, true
}

func (c *Cache) Set(query string, rows []Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[query] = cacheEntry{rows: rows, fetchedAt: time.Now()}
}
