// Package cache keeps each user's loaded entry list for a fixed window.
// It is a freshness heuristic: edits from another device are not detected.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/maheshrc27/contentflow/internal/normalize"
	"golang.org/x/sync/singleflight"
)

type Snapshot struct {
	Data          []normalize.Entry
	LastFetchedAt time.Time
}

// GetOrRefresh reports the cached data and whether it has to be refetched.
func GetOrRefresh(s Snapshot, now time.Time, ttl time.Duration) ([]normalize.Entry, bool) {
	if s.LastFetchedAt.IsZero() || now.Sub(s.LastFetchedAt) >= ttl {
		return s.Data, true
	}
	return s.Data, false
}

type FetchFunc func(ctx context.Context) ([]normalize.Entry, error)

type EntryCache struct {
	ttl   time.Duration
	mu    sync.Mutex
	items map[string]Snapshot
	gens  map[string]uint64
	group singleflight.Group
}

func NewEntryCache(ttl time.Duration) *EntryCache {
	return &EntryCache{ttl: ttl, items: make(map[string]Snapshot), gens: make(map[string]uint64)}
}

func (c *EntryCache) TTL() time.Duration { return c.ttl }

func (c *EntryCache) snapshot(userID string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items[userID]
}

// Load returns the cached list unless it is stale or force is set. A failed
// fetch returns its error and leaves the previous snapshot in place. A fetch
// that overlaps an Invalidate is returned to its callers but not stored.
func (c *EntryCache) Load(ctx context.Context, userID string, now time.Time, force bool, fetch FetchFunc) ([]normalize.Entry, error) {
	data, stale := GetOrRefresh(c.snapshot(userID), now, c.ttl)
	if !stale && !force {
		return data, nil
	}

	v, err, _ := c.group.Do(userID, func() (interface{}, error) {
		c.mu.Lock()
		gen := c.gens[userID]
		c.mu.Unlock()

		fresh, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gens[userID] == gen {
			c.items[userID] = Snapshot{Data: fresh, LastFetchedAt: now}
		}
		c.mu.Unlock()
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]normalize.Entry), nil
}

// Previous returns the last good list, if any.
func (c *EntryCache) Previous(userID string) ([]normalize.Entry, bool) {
	s := c.snapshot(userID)
	return s.Data, !s.LastFetchedAt.IsZero()
}

func (c *EntryCache) Stale(userID string, now time.Time) bool {
	_, stale := GetOrRefresh(c.snapshot(userID), now, c.ttl)
	return stale
}

// Invalidate drops the user's snapshot and detaches any fetch in flight, so
// the next Load reads the store again.
func (c *EntryCache) Invalidate(userID string) {
	c.mu.Lock()
	delete(c.items, userID)
	c.gens[userID]++
	c.mu.Unlock()
	c.group.Forget(userID)
}

// Sweep drops snapshots older than the window and returns how many it removed.
func (c *EntryCache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for userID, s := range c.items {
		if _, stale := GetOrRefresh(s, now, c.ttl); stale {
			delete(c.items, userID)
			removed++
		}
	}
	return removed
}
