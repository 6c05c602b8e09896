package indexer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheMemoizesPerParams(t *testing.T) {
	var builds int32
	cache := NewCache(func(_ context.Context, _ Params) (*Index, error) {
		atomic.AddInt32(&builds, 1)
		return &Index{}, nil
	})

	p := Params{Dir: "docs", ChunkSize: 300, ChunkOverlap: 50}
	first, err := cache.Get(context.Background(), p)
	require.NoError(t, err)
	second, err := cache.Get(context.Background(), p)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&builds))
}

func TestCacheKeyIncludesChunkSettings(t *testing.T) {
	var builds int32
	cache := NewCache(func(_ context.Context, _ Params) (*Index, error) {
		atomic.AddInt32(&builds, 1)
		return &Index{}, nil
	})

	_, err := cache.Get(context.Background(), Params{Dir: "docs", ChunkSize: 300, ChunkOverlap: 50})
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), Params{Dir: "docs", ChunkSize: 500, ChunkOverlap: 50})
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&builds))
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	var builds int32
	cache := NewCache(func(_ context.Context, _ Params) (*Index, error) {
		if atomic.AddInt32(&builds, 1) == 1 {
			return nil, errors.New("directory missing")
		}
		return &Index{}, nil
	})

	p := Params{Dir: "docs", ChunkSize: 300, ChunkOverlap: 50}
	_, err := cache.Get(context.Background(), p)
	require.Error(t, err)

	ix, err := cache.Get(context.Background(), p)
	require.NoError(t, err)
	assert.NotNil(t, ix)
	assert.EqualValues(t, 2, atomic.LoadInt32(&builds))
}

func TestCacheCollapsesConcurrentFirstBuilds(t *testing.T) {
	var builds int32
	release := make(chan struct{})
	cache := NewCache(func(_ context.Context, _ Params) (*Index, error) {
		atomic.AddInt32(&builds, 1)
		<-release
		return &Index{}, nil
	})

	p := Params{Dir: "docs", ChunkSize: 300, ChunkOverlap: 50}
	var wg sync.WaitGroup
	results := make([]*Index, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ix, err := cache.Get(context.Background(), p)
			assert.NoError(t, err)
			results[i] = ix
		}(i)
	}
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&builds))
	for _, ix := range results {
		assert.Same(t, results[0], ix)
	}
}
