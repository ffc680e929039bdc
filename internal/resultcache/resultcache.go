// Package resultcache contains a cache for request evaluation results.
package resultcache

import (
	"fmt"

	"github.com/AdguardTeam/contentblocker/rules"
	"github.com/AdguardTeam/golibs/errors"
	"github.com/bluele/gcache"
)

// Key is the type of result cache keys.  Two requests with equal keys always
// produce the same reactions.
type Key struct {
	// URL is the full request URL.
	URL string

	// Hostname is the domain name of the request.  It is usually derived
	// from URL, but callers may set it explicitly.
	Hostname string

	// ResourceType is the type of the requested resource.
	ResourceType rules.ResourceType

	// LoadType is the load type of the request.
	LoadType rules.LoadType
}

// NewKey returns the cache key for r.
func NewKey(r *rules.Request) (k Key) {
	return Key{
		URL:          r.URL,
		Hostname:     r.Hostname,
		ResourceType: r.ResourceType,
		LoadType:     r.LoadType,
	}
}

// String implements the [fmt.Stringer] interface for Key.  Different keys
// have different string representations.
func (k Key) String() (s string) {
	return fmt.Sprintf(
		"%d|%d|%d|%s%s",
		k.ResourceType,
		k.LoadType,
		len(k.Hostname),
		k.Hostname,
		k.URL,
	)
}

// Cache is an LRU cache of reactions.  It stores private copies of the
// reactions and returns fresh copies, so callers may modify the slices.  It is
// safe for concurrent use.  A nil *Cache is a valid cache that stores nothing.
type Cache struct {
	cache gcache.Cache
}

// New returns a new LRU result cache with the given size.  size must be
// positive.
func New(size int) (c *Cache) {
	return &Cache{
		cache: gcache.New(size).LRU().Build(),
	}
}

// Get returns a copy of the cached reactions, if any.  If c is nil, Get returns
// nil and false.
func (c *Cache) Get(k Key) (reactions []rules.Reaction, ok bool) {
	if c == nil {
		return nil, false
	}

	v, err := c.cache.Get(k)
	if err != nil {
		if !errors.Is(err, gcache.KeyNotFoundError) {
			// Shouldn't happen, since we don't set a serialization function.
			panic(fmt.Errorf("resultcache: getting cache item: %w", err))
		}

		return nil, false
	}

	cached := v.([]rules.Reaction)
	if len(cached) == 0 {
		return nil, true
	}

	return append([]rules.Reaction(nil), cached...), true
}

// Set caches a copy of reactions.  If c is nil, nothing is done.
func (c *Cache) Set(k Key, reactions []rules.Reaction) {
	if c == nil {
		return
	}

	var cached []rules.Reaction
	if len(reactions) > 0 {
		cached = append(make([]rules.Reaction, 0, len(reactions)), reactions...)
	}

	err := c.cache.Set(k, cached)
	if err != nil {
		// Shouldn't happen, since we don't set a serialization function.
		panic(fmt.Errorf("resultcache: setting cache item: %w", err))
	}
}

// Clear clears the cache.  If c is nil, nothing is done.
func (c *Cache) Clear() {
	if c != nil {
		c.cache.Purge()
	}
}

// ItemCount returns the number of items in the cache.  If c is nil, ItemCount
// returns 0.
func (c *Cache) ItemCount() (n int) {
	if c == nil {
		return 0
	}

	return c.cache.Len(false)
}
