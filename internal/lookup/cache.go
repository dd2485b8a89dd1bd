package lookup

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by a closed cache or service.
var ErrClosed = errors.New("lookup service is closed")

// CacheKey identifies a built resolver.
type CacheKey struct {
	// Sources is the canonical selector list the index was built from
	Sources string
	// IncludePrivate reports whether private entities are ranked
	IncludePrivate bool
}

func (k CacheKey) String() string {
	return fmt.Sprintf("%s|%t", k.Sources, k.IncludePrivate)
}

// Cache holds resolvers for the lifetime of the process. Concurrent requests
// for a missing key share a single build.
type Cache struct {
	mu      sync.RWMutex
	entries map[CacheKey]*Resolver
	closed  bool
	group   singleflight.Group
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[CacheKey]*Resolver)}
}

// GetOrBuild returns the resolver cached under key, calling build to create
// it on a miss. Build errors are not cached.
func (c *Cache) GetOrBuild(key CacheKey, build func() (*Resolver, error)) (*Resolver, error) {
	if r, ok, err := c.get(key); ok || err != nil {
		return r, err
	}

	v, err, _ := c.group.Do(key.String(), func() (interface{}, error) {
		if r, ok, err := c.get(key); ok || err != nil {
			return r, err
		}

		r, err := build()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			_ = r.Close()
			return nil, ErrClosed
		}
		c.entries[key] = r
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Resolver), nil
}

func (c *Cache) get(key CacheKey) (*Resolver, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, false, ErrClosed
	}
	r, ok := c.entries[key]
	return r, ok, nil
}

// Len returns the number of cached resolvers.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close closes every cached resolver. Later lookups fail with ErrClosed.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for key, r := range c.entries {
		if err := r.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", key, err))
		}
	}
	c.entries = nil

	return errors.Join(errs...)
}
