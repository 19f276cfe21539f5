// Package cache is the in-process fallback used when the external store is
// unavailable: a single slot holding the last fetched batch and its fetch
// time, replaced wholesale on each refresh.
package cache

import (
	"sync"
	"time"

	"github.com/adam-cott/nba7/internal/news"
)

// Clock is injected so TTL behavior is testable without wall-clock tricks.
type Clock func() time.Time

type NewsCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	now       Clock
	articles  []news.Article
	fetchedAt time.Time
}

func New(ttl time.Duration, now Clock) *NewsCache {
	if now == nil {
		now = time.Now
	}
	return &NewsCache{ttl: ttl, now: now}
}

// Get returns the cached batch and its fetch time. The boolean is false
// when the slot is empty or older than the TTL.
func (c *NewsCache) Get() ([]news.Article, time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) > c.ttl {
		return nil, time.Time{}, false
	}
	out := make([]news.Article, len(c.articles))
	copy(out, c.articles)
	return out, c.fetchedAt, true
}

// Put replaces the slot with a fresh batch.
func (c *NewsCache) Put(articles []news.Article) {
	batch := make([]news.Article, len(articles))
	copy(batch, articles)

	c.mu.Lock()
	c.articles = batch
	c.fetchedAt = c.now()
	c.mu.Unlock()
}
