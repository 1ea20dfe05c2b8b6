package memory

import (
	"context"
	"sync"
	"time"

	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/ports"
)

type listingEntry struct {
	storedAt time.Time
	ttl      time.Duration
	entries  []models.VehicleCatalogEntry
}

func (e listingEntry) valid(now time.Time) bool {
	return now.Sub(e.storedAt) <= e.ttl
}

// ListingCache keeps synthesized listings in process memory.
type ListingCache struct {
	mu    sync.Mutex
	items map[string]listingEntry
	now   func() time.Time
}

func NewListingCache() *ListingCache {
	return &ListingCache{
		items: make(map[string]listingEntry),
		now:   time.Now,
	}
}

func (c *ListingCache) Get(_ context.Context, key ports.ListingKey) ([]models.VehicleCatalogEntry, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key.String()]
	if !ok {
		return nil, derr.ErrListingNotCached
	}
	if !item.valid(now) {
		delete(c.items, key.String())
		return nil, derr.ErrListingNotCached
	}

	return cloneEntries(item.entries), nil
}

// Set is a no-op for a non-positive ttl. Expired entries are pruned on every insert.
func (c *ListingCache) Set(_ context.Context, key ports.ListingKey, entries []models.VehicleCatalogEntry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	now := c.now()
	stored := cloneEntries(entries)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.prune(now)
	c.items[key.String()] = listingEntry{storedAt: now, ttl: ttl, entries: stored}
	return nil
}

// Prune drops every entry that is no longer valid at now.
func (c *ListingCache) Prune(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prune(now)
}

func (c *ListingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *ListingCache) prune(now time.Time) int {
	removed := 0
	for k, item := range c.items {
		if !item.valid(now) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// cloneEntries deep copies so neither the writer nor a reader can reach the
// stored listing.
func cloneEntries(entries []models.VehicleCatalogEntry) []models.VehicleCatalogEntry {
	out := make([]models.VehicleCatalogEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
