// Package cache provides the in-memory TTL content cache. Cached
// devotionals live for one TTL from the moment they are stored; state is
// process-lifetime only.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/gosabda/internal/config"
	"github.com/jonesrussell/gosabda/internal/domain"
	"github.com/jonesrussell/gosabda/internal/logger"
)

// Interface defines the content cache operations.
type Interface interface {
	// Get retrieves content and its storage time from the cache. Expired
	// entries are treated as absent.
	Get(key string) (*domain.Devotional, time.Time, bool)

	// Set stores content in the cache, evicting the oldest entry when full.
	Set(key string, content domain.Devotional)

	// Clear removes all entries.
	Clear()

	// Size returns the current number of entries, expired or not.
	Size() int

	// Cleanup periodically removes expired entries until ctx is cancelled.
	Cleanup(ctx context.Context)
}

// TimeProvider is an interface for getting the current time
type TimeProvider interface {
	Now() time.Time
}

// realTimeProvider is the default implementation of TimeProvider
type realTimeProvider struct{}

func (r *realTimeProvider) Now() time.Time {
	return time.Now()
}

// item holds one cached devotional and the time it was stored.
type item struct {
	content  domain.Devotional
	storedAt time.Time
}

// Cache is an in-memory TTL cache bounded by a maximum entry count.
type Cache struct {
	items         map[string]item
	mu            sync.RWMutex
	ttl           time.Duration
	maxSize       int
	sweepInterval time.Duration
	timeProvider  TimeProvider
	logger        logger.Interface
}

// Ensure Cache implements Interface
var _ Interface = (*Cache)(nil)

// New creates a new content cache.
func New(cfg *config.CacheConfig, log logger.Interface) *Cache {
	return &Cache{
		items:         make(map[string]item),
		ttl:           cfg.TTL,
		maxSize:       cfg.MaxSize,
		sweepInterval: cfg.SweepInterval,
		timeProvider:  &realTimeProvider{},
		logger:        log,
	}
}

// SetTimeProvider sets a custom time provider for testing
func (c *Cache) SetTimeProvider(provider TimeProvider) {
	c.timeProvider = provider
}

// Key builds the cache key for one devotional edition.
func Key(year int, date string) string {
	return fmt.Sprintf("sabda_%d_%s", year, date)
}

// Get retrieves content and its storage time. An entry past its TTL is
// pruned and reported as a miss.
func (c *Cache) Get(key string) (*domain.Devotional, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.items[key]
	if !exists {
		return nil, time.Time{}, false
	}
	if c.timeProvider.Now().Sub(entry.storedAt) > c.ttl {
		delete(c.items, key)
		return nil, time.Time{}, false
	}

	content := entry.content
	return &content, entry.storedAt, true
}

// Set stores content under key. Storing an existing key refreshes its
// timestamp; storing a new key into a full cache evicts the oldest entry.
func (c *Cache) Set(key string, content domain.Devotional) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		c.removeOldest()
	}

	c.items[key] = item{
		content:  content,
		storedAt: c.timeProvider.Now(),
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]item)
}

// Size returns the current number of entries, expired or not.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// removeOldest drops the entry with the oldest timestamp. Callers must
// hold the write lock.
func (c *Cache) removeOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.items {
		if oldestKey == "" || entry.storedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.storedAt
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// Cleanup periodically removes expired entries until ctx is cancelled.
func (c *Cache) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Cache cleanup stopped")
			return
		case <-ticker.C:
			if removed := c.sweepExpired(); removed > 0 {
				c.logger.Debug("Removed expired cache entries", "count", removed)
			}
		}
	}
}

// sweepExpired removes all entries past their TTL and reports how many.
func (c *Cache) sweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.timeProvider.Now()
	removed := 0
	for key, entry := range c.items {
		if now.Sub(entry.storedAt) > c.ttl {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}
