package pulse

import (
	"testing"
	"time"

	"golang.org/x/exp/rand"
)

// steppableClock lets tests advance time manually.
type steppableClock struct {
	now time.Time
}

func (c *steppableClock) Now() time.Time { return c.now }

func (c *steppableClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestCacheHitWithinTTL(t *testing.T) {
	clock := &steppableClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	g := NewGenerator(rand.NewSource(1), clock.Now)
	c := NewSeriesCache(60*time.Second, clock.Now)

	first, err := c.GetOrGenerate(g, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Advance(30 * time.Second)
	second, err := c.GetOrGenerate(g, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected cache hit within TTL to return the same table")
	}
}

func TestCacheExpiry(t *testing.T) {
	clock := &steppableClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	g := NewGenerator(rand.NewSource(1), clock.Now)
	c := NewSeriesCache(60*time.Second, clock.Now)

	first, err := c.GetOrGenerate(g, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Advance(61 * time.Second)
	second, err := c.GetOrGenerate(g, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("expected a fresh table after TTL expiry")
	}
}

func TestCacheKeyedByParameters(t *testing.T) {
	clock := &steppableClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	g := NewGenerator(rand.NewSource(1), clock.Now)
	c := NewSeriesCache(60*time.Second, clock.Now)

	byCount, err := c.GetOrGenerate(g, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byInterval, err := c.GetOrGenerate(g, 10, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if byCount == byInterval {
		t.Error("distinct parameters must not share a cache entry")
	}

	if cached, ok := c.Get(10, 5); !ok || cached != byCount {
		t.Error("expected original entry to survive alongside the second key")
	}
}

func TestCacheDisabledByZeroTTL(t *testing.T) {
	g := NewGenerator(rand.NewSource(1), nil)
	c := NewSeriesCache(0, nil)

	first, err := c.GetOrGenerate(g, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.GetOrGenerate(g, 10, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Error("zero TTL must bypass the cache")
	}
}

func TestCachePropagatesGeneratorError(t *testing.T) {
	g := NewGenerator(rand.NewSource(1), nil)
	c := NewSeriesCache(60*time.Second, nil)

	if _, err := c.GetOrGenerate(g, -1, 5); err == nil {
		t.Error("expected generation error to propagate through the cache")
	}
}
