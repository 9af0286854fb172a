package wheel

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

type cachedWheelEntry struct {
	Version  string
	Wheel    *domain.Wheel
	CachedAt time.Time
}

// wheelCache keeps recently read wheels for the read-heavy participant routes.
// The draw path never trusts it: the resolver re-reads the wheel inside its
// transaction.
type wheelCache struct {
	lru *expirable.LRU[string, *cachedWheelEntry]
}

func newWheelCache(size int, ttl time.Duration) *wheelCache {
	return &wheelCache{
		lru: expirable.NewLRU[string, *cachedWheelEntry](size, nil, ttl),
	}
}

// Get returns a copy of the cached wheel.
func (c *wheelCache) Get(code string) (*domain.Wheel, bool) {
	entry, found := c.lru.Get(code)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(code)
		return nil, false
	}
	return entry.Wheel.Clone(), true
}

func (c *wheelCache) Set(code string, w *domain.Wheel) {
	c.lru.Add(code, &cachedWheelEntry{
		Version:  CacheSchemaVersion,
		Wheel:    w.Clone(),
		CachedAt: time.Now(),
	})
}

func (c *wheelCache) Invalidate(code string) {
	c.lru.Remove(code)
}

func (c *wheelCache) Len() int {
	return c.lru.Len()
}
