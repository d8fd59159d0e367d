package client

import (
	"strings"
	"sync"
	"time"
)

// cacheItem represents a single cached query result.
type cacheItem struct {
	value   any
	expires time.Time
}

// queryCache mirrors the query cache a web frontend keeps for account
// fetches: results live for a short TTL and mutations invalidate them so
// the next read refetches from the node.
type queryCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]cacheItem
}

// newQueryCache constructs a cache with the specified TTL.
func newQueryCache(ttl time.Duration) *queryCache {
	return &queryCache{
		ttl:   ttl,
		items: make(map[string]cacheItem),
	}
}

// get returns the cached value for the key if it hasn't expired.
func (qc *queryCache) get(key string) (any, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	item, exists := qc.items[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(item.expires) {
		delete(qc.items, key)
		return nil, false
	}

	return item.value, true
}

// set stores the value for the key.
func (qc *queryCache) set(key string, value any) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	qc.items[key] = cacheItem{
		value:   value,
		expires: time.Now().Add(qc.ttl),
	}
}

// invalidate drops every cached result whose key starts with one of the
// specified prefixes.
func (qc *queryCache) invalidate(prefixes ...string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	for key := range qc.items {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				delete(qc.items, key)
				break
			}
		}
	}
}
