package service

import (
	"context"
	"sync"
	"time"

	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/ports"
)

type testProvider struct {
	mu        sync.Mutex
	quote     func(req models.QuoteRequest) (models.QuoteResult, error)
	requests  []models.QuoteRequest
	locations []models.Location
	locErr    error
}

func (p *testProvider) Quote(_ context.Context, req models.QuoteRequest) (models.QuoteResult, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
	if p.quote == nil {
		return models.QuoteResult{}, nil
	}
	return p.quote(req)
}

func (p *testProvider) Locations(context.Context) ([]models.Location, error) {
	return p.locations, p.locErr
}

func (p *testProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

type testCache struct {
	entries map[string][]models.VehicleCatalogEntry
	ttls    map[string]time.Duration
	getErr  error
}

func newTestCache() *testCache {
	return &testCache{
		entries: make(map[string][]models.VehicleCatalogEntry),
		ttls:    make(map[string]time.Duration),
	}
}

func (c *testCache) Get(_ context.Context, key ports.ListingKey) ([]models.VehicleCatalogEntry, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.entries[key.String()]
	if !ok {
		return nil, derr.ErrListingNotCached
	}
	return v, nil
}

func (c *testCache) Set(_ context.Context, key ports.ListingKey, entries []models.VehicleCatalogEntry, ttl time.Duration) error {
	c.entries[key.String()] = entries
	c.ttls[key.String()] = ttl
	return nil
}

type testCatalog struct {
	groups  []models.VehicleCatalogEntry
	damages map[string][]models.DamagePoint
}

func (c *testCatalog) Vehicles(location string) []models.VehicleCatalogEntry {
	if location == "" {
		return c.groups
	}
	var out []models.VehicleCatalogEntry
	for _, g := range c.groups {
		if g.ServesLocation(location) {
			out = append(out, g)
		}
	}
	return out
}

func (c *testCatalog) Vehicle(id string) (models.VehicleCatalogEntry, error) {
	for _, g := range c.groups {
		if string(g.ID) == id {
			return g, nil
		}
	}
	return models.VehicleCatalogEntry{}, derr.ErrVehicleNotFound
}

func (c *testCatalog) Damages(plate string) []models.DamagePoint {
	if d, ok := c.damages[plate]; ok {
		return d
	}
	return []models.DamagePoint{}
}

func offer(id, code, macro string, baseDaily float64) models.VehicleOffer {
	return models.VehicleOffer{
		Status:    models.StatusAvailable,
		Reference: models.Reference{Calculated: &models.Calculated{Days: 2, BaseDaily: baseDaily}},
		Vehicle: models.BookingVehicle{
			ID:         models.VehicleID(id),
			Code:       code,
			MacroGroup: macro,
		},
	}
}

func intPtr(v int) *int { return &v }
