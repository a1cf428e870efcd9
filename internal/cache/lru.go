// Package cache provides a size-bounded least recently used cache.
package cache

import (
	"container/list"
	"sync"
)

// LRU is a cache with size-based eviction. It is safe for concurrent use.
type LRU[K comparable, V any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[K]*list.Element
	lru     *list.List
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU creates a new cache holding at most maxSize entries. A maxSize
// below 1 is treated as 1.
func NewLRU[K comparable, V any](maxSize int) *LRU[K, V] {
	return &LRU[K, V]{
		maxSize: max(1, maxSize),
		items:   make(map[K]*list.Element),
		lru:     list.New(),
	}
}

// GetOrCreate returns the value for key, creating it with create when it is
// missing. create is called with the cache locked and must not use it.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		return elem.Value.(*entry[K, V]).value
	}

	value := create()
	c.add(key, value)
	return value
}

// Purge removes all entries.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.lru.Init()
}

func (c *LRU[K, V]) add(key K, value V) {
	c.items[key] = c.lru.PushFront(&entry[K, V]{key: key, value: value})

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

func (c *LRU[K, V]) remove(elem *list.Element) {
	delete(c.items, elem.Value.(*entry[K, V]).key)
	c.lru.Remove(elem)
}
