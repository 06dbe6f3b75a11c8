package model

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/airsight/pm25-forecast/internal/domain"
)

// CachedPredictor wraps a Predictor with an in-memory LRU cache keyed on the
// feature vector. Sound because predictors are deterministic and immutable
// after load: identical vectors always yield identical predictions.
type CachedPredictor struct {
	inner domain.Predictor
	cache *lruCache
}

// NewCachedPredictor creates a cache decorator around a predictor.
func NewCachedPredictor(inner domain.Predictor, maxEntries int) *CachedPredictor {
	return &CachedPredictor{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedPredictor) Predict(ctx context.Context, features []float64) (float64, error) {
	key := vectorKey(features)
	if v, ok := c.cache.get(key); ok {
		return v, nil
	}
	v, err := c.inner.Predict(ctx, features)
	if err != nil {
		return 0, err
	}
	c.cache.put(key, v)
	return v, nil
}

// vectorKey renders a feature vector as a canonical string. %g keeps full
// float64 precision, so distinct vectors never collide.
func vectorKey(features []float64) string {
	var b strings.Builder
	for i, f := range features {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%g", f)
	}
	return b.String()
}

// lruCache is a simple thread-safe LRU cache of prediction values.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value float64
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
