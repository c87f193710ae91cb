package backend

import (
	"context"
	"sync"
	"time"
)

// CachedService wraps a Service with a TTL cache. A refresh burst (the
// watcher firing, the user pressing refresh, the periodic reload) often asks
// for the same snapshot several times within a second; only the first call
// reaches the inner service. Errors are cached too, so a broken feed is not
// re-read in a tight loop.
type CachedService struct {
	inner Service
	ttl   time.Duration
	now   func() time.Time

	mu    sync.Mutex
	entry *cacheEntry
}

type cacheEntry struct {
	snap   *Snapshot
	err    error
	expiry time.Time
}

// Compile-time check.
var _ Service = (*CachedService)(nil)

// NewCachedService wraps inner. A non-positive ttl disables caching.
func NewCachedService(inner Service, ttl time.Duration) *CachedService {
	return &CachedService{inner: inner, ttl: ttl, now: time.Now}
}

// Invalidate drops the cached snapshot. Called when the feed changes.
func (c *CachedService) Invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}

// Source delegates to the inner service.
func (c *CachedService) Source() string { return c.inner.Source() }

// Snapshot returns the cached snapshot when fresh, otherwise asks the inner
// service. Context cancellation is never cached.
func (c *CachedService) Snapshot(ctx context.Context) (*Snapshot, error) {
	if c.ttl <= 0 {
		return c.inner.Snapshot(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e := c.entry; e != nil && c.now().Before(e.expiry) {
		return e.snap, e.err
	}

	snap, err := c.inner.Snapshot(ctx)
	if ctx.Err() != nil {
		return snap, err
	}
	c.entry = &cacheEntry{snap: snap, err: err, expiry: c.now().Add(c.ttl)}
	return snap, err
}
