package metrics_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/gosabda/internal/metrics"
)

func TestNewMetrics(t *testing.T) {
	m := metrics.NewMetrics()
	assert.NotNil(t, m)
	assert.False(t, m.StartTime.IsZero())
}

func TestRecordScrape(t *testing.T) {
	m := metrics.NewMetrics()

	m.RecordScrape(true)
	m.RecordScrape(true)
	m.RecordScrape(false)

	stats := m.Snapshot()
	assert.Equal(t, int64(2), stats.SuccessfulScrapes)
	assert.Equal(t, int64(1), stats.FailedScrapes)
}

func TestCacheCounters(t *testing.T) {
	m := metrics.NewMetrics()

	m.IncrementCacheHit()
	m.IncrementCacheHit()
	m.IncrementCacheMiss()

	stats := m.Snapshot()
	assert.Equal(t, int64(2), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
}

func TestConcurrentIncrements(t *testing.T) {
	m := metrics.NewMetrics()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			m.IncrementCacheHit()
			m.IncrementRateLimited()
			m.IncrementTokensIssued()
		}()
	}
	wg.Wait()

	stats := m.Snapshot()
	assert.Equal(t, int64(workers), stats.CacheHits)
	assert.Equal(t, int64(workers), stats.RateLimitedRequests)
	assert.Equal(t, int64(workers), stats.TokensIssued)
}

func TestReset(t *testing.T) {
	m := metrics.NewMetrics()
	m.IncrementCacheHit()
	m.RecordScrape(true)

	m.Reset()

	assert.Equal(t, metrics.Stats{}, m.Snapshot())
	assert.False(t, m.StartTime.IsZero(), "reset must keep the start time")
}
