package client

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is a keyed read-through cache with explicit invalidation. Entries
// never expire on their own. Concurrent misses for one key share a single
// fetch.
type Cache struct {
	mu         sync.Mutex
	entries    map[string][]byte
	inflight   map[string]uint64 // key -> sequence number of its current fetch
	fetches    uint64
	generation uint64
	group      singleflight.Group
}

func NewCache() *Cache {
	return &Cache{entries: map[string][]byte{}, inflight: map[string]uint64{}}
}

// Get returns the cached value for key, calling fetch on a miss. A value
// fetched while an invalidation ran is returned but not stored. The shared
// fetch is detached from any one caller's cancellation; each caller stops
// waiting when its own ctx is done.
func (c *Cache) Get(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	c.mu.Lock()
	if data, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return data, nil
	}
	c.mu.Unlock()

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		c.mu.Lock()
		started := c.generation
		c.fetches++
		seq := c.fetches
		c.inflight[key] = seq
		c.mu.Unlock()

		data, err := fetch(fetchCtx)

		c.mu.Lock()
		if c.inflight[key] == seq {
			delete(c.inflight, key)
		}
		if err == nil && c.generation == started {
			c.entries[key] = data
		}
		c.mu.Unlock()

		if err != nil {
			return nil, err
		}
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Invalidate drops every entry whose key starts with one of prefixes
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	for key := range c.entries {
		if hasAnyPrefix(key, prefixes) {
			delete(c.entries, key)
		}
	}
	// later readers of an invalidated key must not join a fetch that started before
	for key := range c.inflight {
		if hasAnyPrefix(key, prefixes) {
			c.group.Forget(key)
		}
	}
}

func hasAnyPrefix(key string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.Invalidate("")
}

// Len reports the number of cached entries
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
