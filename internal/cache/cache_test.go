package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/gosabda/internal/config"
	"github.com/jonesrussell/gosabda/internal/domain"
	"github.com/jonesrussell/gosabda/internal/logger"
)

// mockTimeProvider is a mock implementation of TimeProvider
type mockTimeProvider struct {
	currentTime time.Time
}

func (m *mockTimeProvider) Now() time.Time {
	return m.currentTime
}

func (m *mockTimeProvider) Advance(d time.Duration) {
	m.currentTime = m.currentTime.Add(d)
}

func newTestCache(ttl time.Duration, maxSize int) (*Cache, *mockTimeProvider) {
	cfg := &config.CacheConfig{
		TTL:           ttl,
		MaxSize:       maxSize,
		SweepInterval: time.Hour,
	}
	c := New(cfg, logger.NewNoOp())
	mockTime := &mockTimeProvider{currentTime: time.Unix(1700000000, 0)}
	c.SetTimeProvider(mockTime)
	return c, mockTime
}

func devotional(title string) domain.Devotional {
	return domain.Devotional{
		Title:             title,
		DevotionalContent: []string{"paragraph"},
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "sabda_2025_0815", Key(2025, "0815"))
}

func TestCacheSetGet(t *testing.T) {
	c, mockTime := newTestCache(time.Hour, 10)

	c.Set("sabda_2025_0815", devotional("first"))

	got, storedAt, ok := c.Get("sabda_2025_0815")
	assert.True(t, ok)
	assert.Equal(t, "first", got.Title)
	assert.Equal(t, mockTime.currentTime, storedAt)

	_, _, ok = c.Get("sabda_2025_0816")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c, mockTime := newTestCache(100*time.Millisecond, 10)

	c.Set("key", devotional("first"))

	// At exactly the TTL the entry is still fresh.
	mockTime.Advance(100 * time.Millisecond)
	_, _, ok := c.Get("key")
	assert.True(t, ok)

	mockTime.Advance(time.Millisecond)
	_, _, ok = c.Get("key")
	assert.False(t, ok)
}

func TestCacheGetPrunesExpired(t *testing.T) {
	c, mockTime := newTestCache(100*time.Millisecond, 10)

	c.Set("key", devotional("first"))
	mockTime.Advance(101 * time.Millisecond)

	_, _, ok := c.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size(), "expired entry should be pruned on read")
}

func TestCacheSetRefreshesTimestamp(t *testing.T) {
	c, mockTime := newTestCache(100*time.Millisecond, 10)

	c.Set("key", devotional("first"))
	mockTime.Advance(60 * time.Millisecond)
	c.Set("key", devotional("second"))
	mockTime.Advance(60 * time.Millisecond)

	got, _, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "second", got.Title)
}

func TestCacheEvictsOldestWhenFull(t *testing.T) {
	c, mockTime := newTestCache(time.Hour, 2)

	c.Set("a", devotional("a"))
	mockTime.Advance(time.Second)
	c.Set("b", devotional("b"))
	mockTime.Advance(time.Second)
	c.Set("c", devotional("c"))

	assert.Equal(t, 2, c.Size())

	_, _, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, _, ok = c.Get("b")
	assert.True(t, ok)
	_, _, ok = c.Get("c")
	assert.True(t, ok)
}

func TestCacheReplaceWhenFullDoesNotEvict(t *testing.T) {
	c, mockTime := newTestCache(time.Hour, 2)

	c.Set("a", devotional("a"))
	mockTime.Advance(time.Second)
	c.Set("b", devotional("b"))
	mockTime.Advance(time.Second)
	c.Set("a", devotional("a2"))

	assert.Equal(t, 2, c.Size())

	got, _, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "a2", got.Title)
	_, _, ok = c.Get("b")
	assert.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	c, _ := newTestCache(time.Hour, 10)

	c.Set("a", devotional("a"))
	c.Set("b", devotional("b"))
	assert.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCacheSweepExpired(t *testing.T) {
	c, mockTime := newTestCache(100*time.Millisecond, 10)

	c.Set("old", devotional("old"))
	mockTime.Advance(200 * time.Millisecond)
	c.Set("fresh", devotional("fresh"))

	removed := c.sweepExpired()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Size())
	_, _, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestCacheCleanupStopsOnCancel(t *testing.T) {
	c, _ := newTestCache(time.Hour, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Cleanup(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Cleanup did not stop after context cancellation")
	}
}

func TestCacheGetReturnsCopy(t *testing.T) {
	c, _ := newTestCache(time.Hour, 10)

	c.Set("key", devotional("first"))

	got, _, ok := c.Get("key")
	assert.True(t, ok)
	got.Title = "mutated"

	again, _, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "first", again.Title)
}
