package raster

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/textlayout"
)

const (
	// ShardCount is the number of cache shards. Must be a power of 2.
	ShardCount = 16

	// DefaultCapacity is the default maximum number of bitmaps per shard.
	DefaultCapacity = 256

	shardMask = ShardCount - 1
)

// Cache is a sharded LRU cache of glyph bitmaps keyed by
// [textlayout.CacheKey]. Shards are selected with CacheKey.Hash.
//
// Cache is safe for concurrent use. A hit does not allocate.
type Cache struct {
	shards   [ShardCount]*cacheShard
	capacity int // per shard

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheShard struct {
	mu      sync.RWMutex
	entries map[textlayout.CacheKey]*cacheEntry
	lru     lruList
}

type cacheEntry struct {
	bitmap *Bitmap
	node   *lruNode
}

// CacheStats is a snapshot of cache statistics.
type CacheStats struct {
	Len           int
	Capacity      int
	TotalCapacity int
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	HitRate       float64
}

// NewCache creates a cache holding up to capacity bitmaps per shard.
// If capacity <= 0, DefaultCapacity is used.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache{capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &cacheShard{entries: make(map[textlayout.CacheKey]*cacheEntry)}
	}
	return c
}

func (c *Cache) shard(key textlayout.CacheKey) *cacheShard {
	return c.shards[key.Hash()&shardMask]
}

// Get returns the cached bitmap for key.
func (c *Cache) Get(key textlayout.CacheKey) (*Bitmap, bool) {
	s := c.shard(key)

	s.mu.RLock()
	_, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}
	s.lru.MoveToFront(e.node)
	bm := e.bitmap
	s.mu.Unlock()

	c.hits.Add(1)
	return bm, true
}

// Set stores a bitmap, evicting the least recently used entries of the
// shard when it is full.
func (c *Cache) Set(key textlayout.CacheKey, bm *Bitmap) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.setLocked(s, key, bm)
}

// GetOrCreate returns the cached bitmap for key, or calls create and caches
// its result. create runs with the shard locked, so concurrent callers for
// one key rasterize once. Errors are returned and not cached.
func (c *Cache) GetOrCreate(key textlayout.CacheKey, create func() (*Bitmap, error)) (*Bitmap, error) {
	if bm, ok := c.Get(key); ok {
		return bm, nil
	}

	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have filled the entry.
	if e, ok := s.entries[key]; ok {
		s.lru.MoveToFront(e.node)
		return e.bitmap, nil
	}

	bm, err := create()
	if err != nil {
		return nil, err
	}
	c.setLocked(s, key, bm)
	return bm, nil
}

func (c *Cache) setLocked(s *cacheShard, key textlayout.CacheKey, bm *Bitmap) {
	if e, ok := s.entries[key]; ok {
		e.bitmap = bm
		s.lru.MoveToFront(e.node)
		return
	}
	for s.lru.Len() >= c.capacity {
		oldest, ok := s.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(s.entries, oldest)
		c.evictions.Add(1)
	}
	s.entries[key] = &cacheEntry{bitmap: bm, node: s.lru.PushFront(key)}
}

// Delete removes an entry. It reports whether the entry was present.
func (c *Cache) Delete(key textlayout.CacheKey) bool {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.Remove(e.node)
	delete(s.entries, key)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *Cache) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[textlayout.CacheKey]*cacheEntry)
		s.lru.Clear()
		s.mu.Unlock()
	}
}

// Len returns the number of cached bitmaps.
func (c *Cache) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Stats returns current cache statistics.
func (c *Cache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return CacheStats{
		Len:           c.Len(),
		Capacity:      c.capacity,
		TotalCapacity: c.capacity * ShardCount,
		Hits:          hits,
		Misses:        misses,
		Evictions:     c.evictions.Load(),
		HitRate:       hitRate,
	}
}

// ResetStats resets the statistics counters.
func (c *Cache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
