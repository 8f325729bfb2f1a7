// Package cache provides a generic, thread-safe bounded cache that evicts its
// oldest entries in batches.
//
// BatchCache tracks insertion order only. Reads do not refresh an entry, so the
// cache behaves like a FIFO rather than an LRU. When a new key is inserted into a
// full cache, the oldest ceil(capacity*ratio) entries are removed first
// (10% by default).
//
// # Usage
//
//	c := cache.NewBatchCache[string, string](1000,
//		cache.WithAdmission[string, string](func(k string) bool { return len(k) <= 1024 }),
//	)
//
//	c.Put("<b>hi</b>", "&lt;b&gt;hi&lt;/b&gt;")
//	if v, ok := c.Get("<b>hi</b>"); ok {
//		// use v
//	}
//
//	stats := c.Stats() // Size, MaxSize, Hits, Misses, Evictions, HitRate
//
// # Admission
//
// WithAdmission installs a filter consulted by Put before taking the lock.
// Rejected keys are dropped silently and Put returns false.
//
// # Thread Safety
//
// All operations are guarded by a single mutex and can be called concurrently
// from multiple goroutines.
//
// # Performance Characteristics
//
//   - Get: O(1)
//   - Put: O(1) amortized; O(batch) when an eviction happens
//   - Clear: O(1)
package cache
