// Package metrics provides metrics collection and reporting functionality.
package metrics

import (
	"sync"
	"time"
)

// Stats is a point-in-time copy of the counters, shaped for the health
// endpoint.
type Stats struct {
	SuccessfulScrapes   int64 `json:"successful_scrapes"`
	FailedScrapes       int64 `json:"failed_scrapes"`
	CacheHits           int64 `json:"cache_hits"`
	CacheMisses         int64 `json:"cache_misses"`
	RateLimitedRequests int64 `json:"rate_limited_requests"`
	TokensIssued        int64 `json:"tokens_issued"`
}

// Metrics holds the service counters.
type Metrics struct {
	// StartTime is when the process began serving.
	StartTime time.Time
	// SuccessfulScrapes is the number of devotionals fetched and extracted.
	SuccessfulScrapes int64
	// FailedScrapes is the number of scrape attempts that errored out.
	FailedScrapes int64
	// CacheHits is the number of requests answered from the cache.
	CacheHits int64
	// CacheMisses is the number of requests that had to scrape.
	CacheMisses int64
	// RateLimitedRequests is the number of requests rejected by the limiter.
	RateLimitedRequests int64
	// TokensIssued is the number of access tokens generated.
	TokensIssued int64
	// mu protects concurrent access to metrics.
	mu sync.Mutex
}

// NewMetrics creates a new Metrics instance with the start time set.
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// Uptime returns how long the process has been serving.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.StartTime)
}

// RecordScrape updates the scrape counters based on outcome.
func (m *Metrics) RecordScrape(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if success {
		m.SuccessfulScrapes++
	} else {
		m.FailedScrapes++
	}
}

// IncrementCacheHit increments the cache hit counter.
func (m *Metrics) IncrementCacheHit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

// IncrementCacheMiss increments the cache miss counter.
func (m *Metrics) IncrementCacheMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

// IncrementRateLimited increments the rate-limited requests counter.
func (m *Metrics) IncrementRateLimited() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RateLimitedRequests++
}

// IncrementTokensIssued increments the issued-token counter.
func (m *Metrics) IncrementTokensIssued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TokensIssued++
}

// Snapshot returns a copy of the current counter values.
func (m *Metrics) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		SuccessfulScrapes:   m.SuccessfulScrapes,
		FailedScrapes:       m.FailedScrapes,
		CacheHits:           m.CacheHits,
		CacheMisses:         m.CacheMisses,
		RateLimitedRequests: m.RateLimitedRequests,
		TokensIssued:        m.TokensIssued,
	}
}

// Reset returns all counters to zero, keeping the start time.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SuccessfulScrapes = 0
	m.FailedScrapes = 0
	m.CacheHits = 0
	m.CacheMisses = 0
	m.RateLimitedRequests = 0
	m.TokensIssued = 0
}
