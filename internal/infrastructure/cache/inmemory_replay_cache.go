package cache

import (
	"context"
	"sync"
	"time"

	appinv "github.com/wms/backend/internal/application/inventory"
)

type replayEntry struct {
	resp      appinv.MovementResponse
	expiresAt time.Time
}

// InMemoryReplayCache implements ReplayCache using an in-memory map.
// Suitable for single-instance deployments and testing.
type InMemoryReplayCache struct {
	mu        sync.RWMutex
	entries   map[string]replayEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryReplayCache creates an in-memory replay cache with the given
// TTL and starts a background goroutine that evicts expired entries
func NewInMemoryReplayCache(ttl time.Duration) *InMemoryReplayCache {
	c := &InMemoryReplayCache{
		entries:  make(map[string]replayEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached response for the key, if present and unexpired
func (c *InMemoryReplayCache) Get(_ context.Context, key string) (*appinv.MovementResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, false
	}

	resp := e.resp
	resp.Replayed = true
	return &resp, true
}

// Set stores a committed response under the key
func (c *InMemoryReplayCache) Set(_ context.Context, key string, resp *appinv.MovementResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = replayEntry{
		resp:      *resp,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryReplayCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemoryReplayCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemoryReplayCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryReplayCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

var _ appinv.ReplayCache = (*InMemoryReplayCache)(nil)
