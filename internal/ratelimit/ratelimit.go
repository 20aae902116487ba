// Package ratelimit provides the per-client sliding window rate limiter.
// Each client is tracked by a list of request timestamps inside the
// trailing window; state is process-lifetime only.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jonesrussell/gosabda/internal/config"
	"github.com/jonesrussell/gosabda/internal/logger"
)

// Interface defines the rate limiter operations.
type Interface interface {
	// Allow reports whether a request from the client is admitted, and
	// records it when it is.
	Allow(clientID string) bool

	// RequestCount returns the number of requests inside the current window.
	RequestCount(clientID string) int

	// Reset clears the window for one client.
	Reset(clientID string)

	// Clear removes all client state.
	Clear()

	// Cleanup periodically removes idle clients until ctx is cancelled.
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

// Limiter admits up to maxRequests per client inside a trailing window.
type Limiter struct {
	clients       map[string][]time.Time
	mu            sync.RWMutex
	maxRequests   int
	window        time.Duration
	sweepInterval time.Duration
	timeProvider  TimeProvider
	logger        logger.Interface
}

// Ensure Limiter implements Interface
var _ Interface = (*Limiter)(nil)

// New creates a new rate limiter.
func New(cfg *config.RateConfig, log logger.Interface) *Limiter {
	return &Limiter{
		clients:       make(map[string][]time.Time),
		maxRequests:   cfg.MaxRequestsPerMinute,
		window:        cfg.Window,
		sweepInterval: cfg.SweepInterval,
		timeProvider:  &realTimeProvider{},
		logger:        log,
	}
}

// SetTimeProvider sets a custom time provider for testing
func (l *Limiter) SetTimeProvider(provider TimeProvider) {
	l.timeProvider = provider
}

// Allow prunes timestamps that fell out of the window, then admits the
// request iff the remaining count is below the quota. Only admitted
// requests are recorded, so rejected calls do not extend the window.
func (l *Limiter) Allow(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.timeProvider.Now()
	recent := l.pruneLocked(clientID, now)

	if len(recent) >= l.maxRequests {
		l.clients[clientID] = recent
		return false
	}

	l.clients[clientID] = append(recent, now)
	return true
}

// RequestCount returns the number of requests inside the current window.
func (l *Limiter) RequestCount(clientID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := l.timeProvider.Now()
	count := 0
	for _, at := range l.clients[clientID] {
		if now.Sub(at) < l.window {
			count++
		}
	}
	return count
}

// Reset clears the window for one client.
func (l *Limiter) Reset(clientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.clients, clientID)
}

// Clear removes all client state.
func (l *Limiter) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.clients = make(map[string][]time.Time)
}

// pruneLocked returns the client's timestamps still inside the window.
// Callers must hold the write lock.
func (l *Limiter) pruneLocked(clientID string, now time.Time) []time.Time {
	recent := l.clients[clientID][:0]
	for _, at := range l.clients[clientID] {
		if now.Sub(at) < l.window {
			recent = append(recent, at)
		}
	}
	return recent
}

// Cleanup periodically removes clients with no requests inside the window
// until ctx is cancelled, so one-off clients do not accumulate forever.
func (l *Limiter) Cleanup(ctx context.Context) {
	ticker := time.NewTicker(l.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Rate limiter cleanup stopped")
			return
		case <-ticker.C:
			if removed := l.sweepIdle(); removed > 0 {
				l.logger.Debug("Removed idle rate limit clients", "count", removed)
			}
		}
	}
}

// sweepIdle prunes every client's window and drops clients left empty.
func (l *Limiter) sweepIdle() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.timeProvider.Now()
	removed := 0
	for clientID := range l.clients {
		recent := l.pruneLocked(clientID, now)
		if len(recent) == 0 {
			delete(l.clients, clientID)
			removed++
			continue
		}
		l.clients[clientID] = recent
	}
	return removed
}
