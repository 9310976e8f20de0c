package tagger

import (
	"context"
	"sync"
	"time"

	"github.com/codeready-toolchain/contractmask/pkg/models"
)

type memoryEntry struct {
	spans    []models.EntitySpan
	storedAt time.Time
}

// MemoryCache is an in-process Cache with TTL expiration.
// Expired entries are removed lazily on Get.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a cache whose entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]models.EntitySpan, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if c.now().Sub(entry.storedAt) > c.ttl {
		// A concurrent Set may have refreshed the entry since RUnlock.
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && c.now().Sub(current.storedAt) > c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	return cloneSpans(entry.spans), true, nil
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, key string, spans []models.EntitySpan) error {
	c.mu.Lock()
	c.entries[key] = &memoryEntry{spans: cloneSpans(spans), storedAt: c.now()}
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cloneSpans(spans []models.EntitySpan) []models.EntitySpan {
	if spans == nil {
		return nil
	}
	return append([]models.EntitySpan(nil), spans...)
}
