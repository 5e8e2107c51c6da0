package prefs

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	owner, key string
}

type cacheEntry struct {
	value string
	ok    bool
}

// Cached is a read-through, write-through LRU in front of a slower backend.
type Cached struct {
	next  Backend
	cache *lru.Cache[cacheKey, cacheEntry]
}

// NewCached remembers up to size lookups, misses included.
func NewCached(next Backend, size int) (*Cached, error) {
	cache, err := lru.New[cacheKey, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cached{next: next, cache: cache}, nil
}

func (c *Cached) Get(owner, key string) (string, bool, error) {
	k := cacheKey{owner, key}
	if e, ok := c.cache.Get(k); ok {
		return e.value, e.ok, nil
	}
	v, ok, err := c.next.Get(owner, key)
	if err != nil {
		return "", false, err
	}
	c.cache.Add(k, cacheEntry{value: v, ok: ok})
	return v, ok, nil
}

func (c *Cached) Put(owner, key, value string) error {
	k := cacheKey{owner, key}
	if err := c.next.Put(owner, key, value); err != nil {
		c.cache.Remove(k)
		return err
	}
	c.cache.Add(k, cacheEntry{value: value, ok: true})
	return nil
}

// Unwrap returns the backend behind the cache.
func (c *Cached) Unwrap() Backend { return c.next }
