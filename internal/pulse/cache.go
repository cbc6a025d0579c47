package pulse

import (
	"sync"
	"time"
)

// DefaultCacheTTL matches the dashboard's refresh cadence: generated tables
// are reused for up to a minute before a fresh series is drawn.
const DefaultCacheTTL = 60 * time.Second

type seriesKey struct {
	count           int
	intervalMinutes int
}

type seriesEntry struct {
	series  *HistoricalSeries
	expires time.Time
}

// SeriesCache memoizes generated series per (count, interval) pair for a
// fixed TTL. Safe for concurrent use by HTTP handlers. A TTL <= 0 disables
// caching entirely, which tests use to force regeneration.
type SeriesCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   Clock
	entries map[seriesKey]seriesEntry
}

// NewSeriesCache creates a cache with the given TTL. A nil clock falls back
// to time.Now.
func NewSeriesCache(ttl time.Duration, clock Clock) *SeriesCache {
	if clock == nil {
		clock = time.Now
	}
	return &SeriesCache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[seriesKey]seriesEntry),
	}
}

// Get returns the cached series for the parameters if one exists and has
// not expired.
func (c *SeriesCache) Get(count, intervalMinutes int) (*HistoricalSeries, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[seriesKey{count, intervalMinutes}]
	if !ok || c.clock().After(entry.expires) {
		return nil, false
	}
	return entry.series, true
}

// Put stores a series under the parameters it was generated with.
func (c *SeriesCache) Put(count, intervalMinutes int, series *HistoricalSeries) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[seriesKey{count, intervalMinutes}] = seriesEntry{
		series:  series,
		expires: c.clock().Add(c.ttl),
	}
}

// GetOrGenerate returns the cached series for the parameters, generating
// and caching a fresh one on miss or expiry.
func (c *SeriesCache) GetOrGenerate(g *Generator, count, intervalMinutes int) (*HistoricalSeries, error) {
	if series, ok := c.Get(count, intervalMinutes); ok {
		return series, nil
	}

	series, err := g.Generate(count, intervalMinutes)
	if err != nil {
		return nil, err
	}
	c.Put(count, intervalMinutes, series)
	return series, nil
}
