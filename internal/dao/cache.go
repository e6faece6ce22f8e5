package dao

import (
	"context"
	"sync"
	"time"

	"github.com/a1s/gridbind/internal/model1"
)

// DefaultCacheTTL is the default time-to-live for cached loads.
const DefaultCacheTTL = 5 * time.Second

// CachedStore serves repeated loads from memory for a TTL. Writes go
// through and refresh the cached snapshot.
type CachedStore struct {
	Store

	ttl       time.Duration
	sections  model1.Sections
	timestamp time.Time
	valid     bool
	now       func() time.Time
	mx        sync.RWMutex
}

// NewCachedStore wraps s with a TTL load cache.
func NewCachedStore(s Store, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{Store: s, ttl: ttl, now: time.Now}
}

// Load returns the cached snapshot while fresh.
func (c *CachedStore) Load(ctx context.Context) (model1.Sections, error) {
	c.mx.RLock()
	if c.valid && c.now().Sub(c.timestamp) <= c.ttl {
		ss := c.sections.Clone()
		c.mx.RUnlock()
		return ss, nil
	}
	c.mx.RUnlock()

	ss, err := c.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ss)

	return ss.Clone(), nil
}

// Save writes through and caches ss.
func (c *CachedStore) Save(ctx context.Context, ss model1.Sections) error {
	if err := c.Store.Save(ctx, ss); err != nil {
		c.Invalidate()
		return err
	}
	c.set(ss)

	return nil
}

// Delete writes through and drops the rows from the cached snapshot.
func (c *CachedStore) Delete(ctx context.Context, ids ...string) error {
	if err := c.Store.Delete(ctx, ids...); err != nil {
		c.Invalidate()
		return err
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	if c.valid {
		c.sections = dropRows(c.sections, ids...)
	}

	return nil
}

// Invalidate forces the next load to hit the store.
func (c *CachedStore) Invalidate() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.valid, c.sections = false, nil
}

func (c *CachedStore) set(ss model1.Sections) {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.sections, c.timestamp, c.valid = ss.Clone(), c.now(), true
}
