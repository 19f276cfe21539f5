package metrics

import (
	"sync"
	"time"
)

// Metrics are process-wide pipeline counters, exposed on /metrics.
type Metrics struct {
	mu sync.RWMutex

	ItemsFetched       int64
	ItemsFiltered      int64
	DuplicatesRemoved  int64
	SentimentFallbacks int64
	CacheHits          int64
	CacheMisses        int64
	VotesRecorded      int64

	LastRefreshTime     time.Time
	LastRefreshDuration time.Duration
	LastError           string
	LastErrorTime       time.Time
	IsHealthy           bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddFetched(n int) {
	m.mu.Lock()
	m.ItemsFetched += int64(n)
	m.mu.Unlock()
}

func (m *Metrics) AddFiltered(n int) {
	m.mu.Lock()
	m.ItemsFiltered += int64(n)
	m.mu.Unlock()
}

func (m *Metrics) AddDuplicates(n int) {
	m.mu.Lock()
	m.DuplicatesRemoved += int64(n)
	m.mu.Unlock()
}

func (m *Metrics) IncrementSentimentFallbacks() {
	m.mu.Lock()
	m.SentimentFallbacks++
	m.mu.Unlock()
}

func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	m.CacheHits++
	m.mu.Unlock()
}

func (m *Metrics) IncrementCacheMisses() {
	m.mu.Lock()
	m.CacheMisses++
	m.mu.Unlock()
}

func (m *Metrics) IncrementVotes() {
	m.mu.Lock()
	m.VotesRecorded++
	m.mu.Unlock()
}

func (m *Metrics) RecordRefresh(d time.Duration) {
	m.mu.Lock()
	m.LastRefreshTime = time.Now()
	m.LastRefreshDuration = d
	m.IsHealthy = true
	m.mu.Unlock()
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
	m.mu.Unlock()
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"items_fetched":            m.ItemsFetched,
		"items_filtered":           m.ItemsFiltered,
		"duplicates_removed":       m.DuplicatesRemoved,
		"sentiment_fallbacks":      m.SentimentFallbacks,
		"cache_hits":               m.CacheHits,
		"cache_misses":             m.CacheMisses,
		"votes_recorded":           m.VotesRecorded,
		"last_refresh_time":        m.LastRefreshTime.Format(time.RFC3339),
		"last_refresh_duration_ms": m.LastRefreshDuration.Milliseconds(),
		"last_error":               m.LastError,
		"last_error_time":          m.LastErrorTime.Format(time.RFC3339),
		"is_healthy":               m.IsHealthy,
	}
}
