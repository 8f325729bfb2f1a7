package cache

import (
	"container/list"
	"math"
	"sync"
)

// DefaultEvictRatio is the share of capacity dropped when a full cache receives a new key.
const DefaultEvictRatio = 0.1

type batchEntry[K comparable, V any] struct {
	key   K
	value V
}

// BatchCache is a thread-safe bounded cache that remembers insertion order.
// When a new key arrives and the cache is full, the oldest entries are evicted
// in one batch instead of one at a time, so eviction cost is amortized over
// many insertions. Reads never change an entry's age.
type BatchCache[K comparable, V any] struct {
	capacity   int
	evictBatch int
	items      map[K]*list.Element
	order      *list.List // front is newest
	admit      func(K) bool

	hits      uint64
	misses    uint64
	evictions uint64

	mu sync.Mutex
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Size      int
	MaxSize   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Option configures a BatchCache.
type Option[K comparable, V any] func(*BatchCache[K, V])

// WithEvictRatio sets the share of capacity evicted at once. Values outside
// (0, 1] are ignored.
func WithEvictRatio[K comparable, V any](ratio float64) Option[K, V] {
	return func(c *BatchCache[K, V]) {
		if ratio > 0 && ratio <= 1 {
			c.evictBatch = batchSize(c.capacity, ratio)
		}
	}
}

// WithAdmission registers a filter consulted by Put. Keys rejected by the filter
// are silently dropped.
func WithAdmission[K comparable, V any](fn func(K) bool) Option[K, V] {
	return func(c *BatchCache[K, V]) {
		c.admit = fn
	}
}

// NewBatchCache creates a cache holding at most capacity entries.
// The capacity must be positive, otherwise it panics.
func NewBatchCache[K comparable, V any](capacity int, opts ...Option[K, V]) *BatchCache[K, V] {
	if capacity <= 0 {
		panic("batch cache capacity must be positive")
	}
	c := &BatchCache[K, V]{
		capacity:   capacity,
		evictBatch: batchSize(capacity, DefaultEvictRatio),
		items:      make(map[K]*list.Element, capacity),
		order:      list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached value for key. It does not affect eviction order.
func (c *BatchCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.hits++
		return elem.Value.(*batchEntry[K, V]).value, true
	}

	c.misses++
	var zero V
	return zero, false
}

// Put stores value under key and reports whether the entry was admitted.
// Updating an existing key keeps its original age. Inserting a new key into a
// full cache first evicts the oldest batch of entries.
func (c *BatchCache[K, V]) Put(key K, value V) bool {
	if c.admit != nil && !c.admit(key) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*batchEntry[K, V]).value = value
		return true
	}

	if len(c.items) >= c.capacity {
		c.evictOldest(c.evictBatch)
	}

	c.items[key] = c.order.PushFront(&batchEntry[K, V]{key: key, value: value})
	return true
}

// Len returns the number of cached entries.
func (c *BatchCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes all items and resets the hit counters.
func (c *BatchCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// Stats returns a snapshot of the cache counters.
func (c *BatchCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Size:      len(c.items),
		MaxSize:   c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Must be called with lock held.
func (c *BatchCache[K, V]) evictOldest(n int) {
	for range n {
		elem := c.order.Back()
		if elem == nil {
			return
		}
		c.order.Remove(elem)
		entry := elem.Value.(*batchEntry[K, V])
		delete(c.items, entry.key)
		c.evictions++
	}
}

func batchSize(capacity int, ratio float64) int {
	n := int(math.Ceil(float64(capacity) * ratio))
	return max(n, 1)
}
