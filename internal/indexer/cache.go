package indexer

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// BuildFunc builds an index for the given parameters. Injected into the
// cache so tests can substitute a fake build.
type BuildFunc func(ctx context.Context, p Params) (*Index, error)

// Cache memoizes index builds per process, keyed by build parameters.
// Concurrent first builds for the same key are collapsed into a single
// build via singleflight; failed builds are not cached.
type Cache struct {
	build   BuildFunc
	group   singleflight.Group
	mu      sync.Mutex
	entries map[Params]*Index
}

func NewCache(build BuildFunc) *Cache {
	return &Cache{build: build, entries: make(map[Params]*Index)}
}

// Get returns the cached index for p, building it on first use.
func (c *Cache) Get(ctx context.Context, p Params) (*Index, error) {
	c.mu.Lock()
	if ix, ok := c.entries[p]; ok {
		c.mu.Unlock()
		return ix, nil
	}
	c.mu.Unlock()

	key := fmt.Sprintf("%s|%d|%d", p.Dir, p.ChunkSize, p.ChunkOverlap)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.Lock()
		if ix, ok := c.entries[p]; ok {
			c.mu.Unlock()
			return ix, nil
		}
		c.mu.Unlock()
		ix, err := c.build(ctx, p)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[p] = ix
		c.mu.Unlock()
		return ix, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}
