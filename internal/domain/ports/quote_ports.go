package ports

import (
	"context"
	"fmt"
	"time"

	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
)

type QuoteSource interface {
	Quote(ctx context.Context, req models.QuoteRequest) (models.QuoteResult, error)
}

type LocationSource interface {
	Locations(ctx context.Context) ([]models.Location, error)
}

// VehicleCatalog is the static descriptive catalog.
type VehicleCatalog interface {
	Vehicles(location string) []models.VehicleCatalogEntry
	Vehicle(id string) (models.VehicleCatalogEntry, error)
	Damages(plateOrVIN string) []models.DamagePoint
}

type ListingKey struct {
	Location string
	Age      int
	Channel  string
}

func (k ListingKey) String() string {
	return fmt.Sprintf("%s|age=%d|channel=%s", k.Location, k.Age, k.Channel)
}

type ListingCache interface {
	Get(ctx context.Context, key ListingKey) ([]models.VehicleCatalogEntry, error)
	Set(ctx context.Context, key ListingKey, entries []models.VehicleCatalogEntry, ttl time.Duration) error
}

type ListingQuery struct {
	Location string
	Age      int
	Channel  string
}

type VehicleLister interface {
	ListVehicles(ctx context.Context, query ListingQuery) ([]models.VehicleCatalogEntry, error)
}

// QuoteProvider is a data source that can both quote and list its locations.
type QuoteProvider interface {
	QuoteSource
	LocationSource
}
