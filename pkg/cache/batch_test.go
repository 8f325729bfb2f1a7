package cache_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inputguard/pkg/cache"
)

func TestBatchCache_Basic(t *testing.T) {
	t.Parallel()

	t.Run("put and get", func(t *testing.T) {
		t.Parallel()
		c := cache.NewBatchCache[string, int](3)

		assert.True(t, c.Put("a", 1))
		assert.True(t, c.Put("b", 2))
		assert.True(t, c.Put("c", 3))

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, val)

		val, ok = c.Get("c")
		assert.True(t, ok)
		assert.Equal(t, 3, val)

		assert.Equal(t, 3, c.Len())
		assert.Equal(t, 3, c.Stats().MaxSize)
	})

	t.Run("get non-existent", func(t *testing.T) {
		t.Parallel()
		c := cache.NewBatchCache[string, int](3)

		val, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Equal(t, 0, val)
	})

	t.Run("update existing keeps size", func(t *testing.T) {
		t.Parallel()
		c := cache.NewBatchCache[string, int](3)

		c.Put("a", 1)
		c.Put("a", 2)

		val, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, c.Len())
	})
}

func TestBatchCache_Eviction(t *testing.T) {
	t.Parallel()

	t.Run("evicts oldest batch when full", func(t *testing.T) {
		t.Parallel()
		c := cache.NewBatchCache[int, int](10, cache.WithEvictRatio[int, int](0.3))

		for i := range 10 {
			c.Put(i, i)
		}
		require.Equal(t, 10, c.Len())

		c.Put(100, 100)

		// 10 - 3 evicted + 1 inserted
		assert.Equal(t, 8, c.Len())
		for i := range 3 {
			_, ok := c.Get(i)
			assert.False(t, ok, "key %d should have been evicted", i)
		}
		for i := 3; i < 10; i++ {
			_, ok := c.Get(i)
			assert.True(t, ok, "key %d should still be cached", i)
		}
		_, ok := c.Get(100)
		assert.True(t, ok)
	})

	t.Run("reads do not refresh age", func(t *testing.T) {
		t.Parallel()
		c := cache.NewBatchCache[string, int](3, cache.WithEvictRatio[string, int](0.1))

		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("c", 3)

		c.Get("a")
		c.Put("d", 4)

		_, ok := c.Get("a")
		assert.False(t, ok, "a is the oldest insertion and must go first")
		_, ok = c.Get("b")
		assert.True(t, ok)
	})

	t.Run("updating a key keeps its age", func(t *testing.T) {
		t.Parallel()
		c := cache.NewBatchCache[string, int](2, cache.WithEvictRatio[string, int](0.5))

		c.Put("a", 1)
		c.Put("b", 2)
		c.Put("a", 10)
		c.Put("c", 3)

		_, ok := c.Get("a")
		assert.False(t, ok)
		val, ok := c.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
	})

	t.Run("default ratio on 1000 entries", func(t *testing.T) {
		t.Parallel()
		c := cache.NewBatchCache[string, string](1000)

		for i := range 1000 {
			c.Put(strconv.Itoa(i), "v")
		}
		require.Equal(t, 1000, c.Len())

		c.Put("new", "v")
		assert.Equal(t, 901, c.Len())
		assert.Equal(t, uint64(100), c.Stats().Evictions)
	})

	t.Run("size never exceeds capacity", func(t *testing.T) {
		t.Parallel()
		c := cache.NewBatchCache[int, int](50)

		for i := range 5000 {
			c.Put(i, i)
			require.LessOrEqual(t, c.Len(), 50)
		}
	})

	t.Run("invalid ratio is ignored", func(t *testing.T) {
		t.Parallel()
		c := cache.NewBatchCache[int, int](10, cache.WithEvictRatio[int, int](2))

		for i := range 11 {
			c.Put(i, i)
		}
		assert.Equal(t, 10, c.Len())
	})
}

func TestBatchCache_Admission(t *testing.T) {
	t.Parallel()

	c := cache.NewBatchCache[string, string](10,
		cache.WithAdmission[string, string](func(k string) bool { return len(k) <= 3 }),
	)

	assert.True(t, c.Put("abc", "x"))
	assert.False(t, c.Put("abcd", "x"))
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("abcd")
	assert.False(t, ok)
}

func TestBatchCache_Stats(t *testing.T) {
	t.Parallel()
	c := cache.NewBatchCache[string, int](5)

	assert.Equal(t, cache.Stats{MaxSize: 5}, c.Stats())

	c.Put("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	assert.Equal(t, 1, s.Size)
	assert.Equal(t, 5, s.MaxSize)
	assert.Equal(t, uint64(3), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.InDelta(t, 0.75, s.HitRate, 1e-9)

	c.Clear()
	assert.Equal(t, cache.Stats{MaxSize: 5}, c.Stats())
}

func TestBatchCache_EdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("capacity of 1", func(t *testing.T) {
		t.Parallel()
		c := cache.NewBatchCache[string, int](1)

		c.Put("a", 1)
		c.Put("b", 2)

		_, ok := c.Get("a")
		assert.False(t, ok)

		val, ok := c.Get("b")
		assert.True(t, ok)
		assert.Equal(t, 2, val)
	})

	t.Run("panic on zero capacity", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			cache.NewBatchCache[string, int](0)
		})
	})

	t.Run("panic on negative capacity", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() {
			cache.NewBatchCache[string, int](-1)
		})
	})
}

func TestBatchCache_Concurrent(t *testing.T) {
	t.Parallel()
	c := cache.NewBatchCache[int, int](100)

	var wg sync.WaitGroup
	for i := range 500 {
		wg.Add(3)
		go func(v int) {
			defer wg.Done()
			c.Put(v, v*2)
		}(i)
		go func(k int) {
			defer wg.Done()
			c.Get(k)
		}(i)
		go func() {
			defer wg.Done()
			c.Stats()
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 100)
}

func BenchmarkBatchCache_Put(b *testing.B) {
	c := cache.NewBatchCache[int, int](1000)

	b.ResetTimer()
	for i := range b.N {
		c.Put(i%2000, i)
	}
}

func BenchmarkBatchCache_Get(b *testing.B) {
	c := cache.NewBatchCache[int, int](1000)

	for i := range 1000 {
		c.Put(i, i)
	}

	b.ResetTimer()
	for i := range b.N {
		c.Get(i % 1000)
	}
}
