package cache

import (
	"sync"
	"time"

	"github.com/Rainerrr/Mizrahi-Automations/internal/checks"
)

// MemoryCache provides an in-memory L1 cache for closing prices and
// denylists. A closing price never changes once the trading day is over,
// so price entries have no TTL; denylists are refetched after theirs
// expires.
type MemoryCache struct {
	prices  map[string]priceEntry
	priceMu sync.RWMutex

	denylists   []checks.Denylist
	denyFetched time.Time
	denyMu      sync.RWMutex
	denyTTL     time.Duration
}

type priceEntry struct {
	price float64
	found bool
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache(denylistTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		prices:  make(map[string]priceEntry),
		denyTTL: denylistTTL,
	}
}

// priceCacheKey generates a cache key for one security's trading day
func priceCacheKey(securityID string, date time.Time) string {
	return securityID + "|" + date.Format("2006-01-02")
}

// GetClosingPrice retrieves a cached closing price lookup. Negative
// lookups are cached too, so found reports what the source said and
// cached reports whether anything was stored.
func (c *MemoryCache) GetClosingPrice(securityID string, date time.Time) (price float64, found, cached bool) {
	c.priceMu.RLock()
	defer c.priceMu.RUnlock()

	entry, exists := c.prices[priceCacheKey(securityID, date)]
	if !exists {
		return 0, false, false
	}
	return entry.price, entry.found, true
}

// SetClosingPrice caches a closing price lookup result.
func (c *MemoryCache) SetClosingPrice(securityID string, date time.Time, price float64, found bool) {
	c.priceMu.Lock()
	defer c.priceMu.Unlock()

	c.prices[priceCacheKey(securityID, date)] = priceEntry{price: price, found: found}
}

// GetDenylists retrieves the cached denylists if still fresh.
func (c *MemoryCache) GetDenylists() ([]checks.Denylist, bool) {
	c.denyMu.RLock()
	defer c.denyMu.RUnlock()

	if c.denylists == nil || time.Since(c.denyFetched) > c.denyTTL {
		return nil, false
	}
	return c.denylists, true
}

// GetDenylistsStale retrieves the cached denylists regardless of age,
// with the time they were fetched. Used as a degraded fallback when the
// list source is unreachable.
func (c *MemoryCache) GetDenylistsStale() ([]checks.Denylist, time.Time, bool) {
	c.denyMu.RLock()
	defer c.denyMu.RUnlock()

	if c.denylists == nil {
		return nil, time.Time{}, false
	}
	return c.denylists, c.denyFetched, true
}

// SetDenylists caches denylists fetched at the given time. Freshness is
// judged against that time, so lists restored from the file mirror keep
// their original age.
func (c *MemoryCache) SetDenylists(lists []checks.Denylist, fetchedAt time.Time) {
	c.denyMu.Lock()
	defer c.denyMu.Unlock()

	c.denylists = lists
	c.denyFetched = fetchedAt
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.priceMu.Lock()
	c.prices = make(map[string]priceEntry)
	c.priceMu.Unlock()

	c.denyMu.Lock()
	c.denylists = nil
	c.denyFetched = time.Time{}
	c.denyMu.Unlock()
}
