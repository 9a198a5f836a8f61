package insurai

import (
	"sync"
	"time"

	"github.com/Shreekar11/insura-ai-sub005/model"
	"github.com/google/uuid"
)

// responseCache is a TTL cache for answers, keyed by workflow scope and
// query text. Expired entries are dropped lazily on read.
type responseCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	answer    *model.Answer
	expiresAt time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func cacheKey(workflowID uuid.UUID, query string) string {
	return workflowID.String() + "\n" + query
}

func (c *responseCache) Get(workflowID uuid.UUID, query string) (*model.Answer, bool) {
	key := cacheKey(workflowID, query)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	return entry.answer, true
}

func (c *responseCache) Set(workflowID uuid.UUID, query string, answer *model.Answer) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.entries[cacheKey(workflowID, query)] = cacheEntry{
		answer:    answer,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Len returns the number of cached entries, expired ones included.
func (c *responseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
