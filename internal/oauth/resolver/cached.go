package resolver

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// LookupTimeout bounds a shared lookup of the wrapped source. The lookup runs
// detached from the callers that joined it.
const LookupTimeout = 10 * time.Second

// CachedSource keeps hits of the wrapped source for a fixed TTL and collapses
// concurrent lookups of the same id into one. Absent results are not cached.
type CachedSource struct {
	next  Source
	cache *gocache.Cache
	group singleflight.Group

	mu          sync.Mutex
	generations map[string]uint64
}

// NewCachedSource wraps next with a cache of ttl. ttl must be positive.
func NewCachedSource(next Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:        next,
		cache:       gocache.New(ttl, 2*ttl),
		generations: make(map[string]uint64),
	}
}

// Name implements named.
func (c *CachedSource) Name() string {
	if n, ok := c.next.(named); ok {
		return n.Name() + "_cached"
	}

	return "cached"
}

// FindClientByID implements Source. A caller whose ctx ends gives up waiting
// with ctx.Err(); the shared lookup keeps running for the others.
func (c *CachedSource) FindClientByID(ctx context.Context, clientID string) (*Descriptor, error) {
	if v, ok := c.cache.Get(clientID); ok {
		return v.(*Descriptor), nil //nolint:forcetypeassert
	}

	ch := c.group.DoChan(clientID, func() (any, error) {
		gen := c.generation(clientID)

		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LookupTimeout)
		defer cancel()

		d, err := c.next.FindClientByID(lookupCtx, clientID)
		if err != nil {
			return nil, err
		}
		if d != nil {
			c.store(clientID, gen, d)
		}
		return d, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Descriptor), nil //nolint:forcetypeassert
	}
}

// Invalidate drops the cached entry of clientID. A lookup already in flight
// still answers its callers but does not refill the cache.
func (c *CachedSource) Invalidate(clientID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[clientID]++
	c.cache.Delete(clientID)
	c.group.Forget(clientID)
}

func (c *CachedSource) generation(clientID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generations[clientID]
}

func (c *CachedSource) store(clientID string, gen uint64, d *Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[clientID] == gen {
		c.cache.SetDefault(clientID, d)
	}
}
