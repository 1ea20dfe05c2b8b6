package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/ports"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100

	wireframeHeight = 353
	wireframeWidth  = 698
)

var placeholderWireframe = base64.StdEncoding.EncodeToString([]byte("placeholder"))

type VehiclesQuery struct {
	Location string
	Skip     int
	PageSize *int
	Source   string
	Age      int
	Channel  string
}

type CatalogService struct {
	log     *zap.Logger
	sources *Sources
	catalog ports.VehicleCatalog
	lister  ports.VehicleLister
}

func NewCatalogService(log *zap.Logger, sources *Sources, catalog ports.VehicleCatalog, lister ports.VehicleLister) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}

	return &CatalogService{
		log:     log,
		sources: sources,
		catalog: catalog,
		lister:  lister,
	}
}

func (s *CatalogService) Locations(ctx context.Context, source string) ([]models.Location, error) {
	const op = "service.Locations"
	tracer := otel.Tracer("quote-api/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	name, provider, err := s.sources.Resolve(source)
	span.SetAttributes(attribute.String("locations.source", name))
	if err != nil {
		span.SetStatus(otelcodes.Error, "source unavailable")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	locations, err := provider.Locations(ctx)
	if err != nil {
		s.log.Warn("failed to load locations", zap.String("op", op), zap.String("source", name), zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "locations failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Int("locations.count", len(locations)))
	return locations, nil
}

// Vehicles lists one page of vehicle groups. The local source filters the
// static catalog; the upstream source synthesizes the listing by probing.
func (s *CatalogService) Vehicles(ctx context.Context, q VehiclesQuery) (models.VehiclesPage, error) {
	const op = "service.Vehicles"
	tracer := otel.Tracer("quote-api/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	pageSize := DefaultPageSize
	if q.PageSize != nil {
		pageSize = *q.PageSize
	}
	if q.Skip < 0 {
		span.SetStatus(otelcodes.Error, "invalid skip")
		return models.VehiclesPage{}, fmt.Errorf("%s: %w: skip must be >= 0", op, derr.ErrInvalidRequest)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		span.SetStatus(otelcodes.Error, "invalid page size")
		return models.VehiclesPage{}, fmt.Errorf("%s: %w: page_size must be between 1 and %d", op, derr.ErrInvalidRequest, MaxPageSize)
	}

	name, _, err := s.sources.Resolve(q.Source)
	span.SetAttributes(
		attribute.String("vehicles.source", name),
		attribute.String("vehicles.location", q.Location),
	)
	if err != nil {
		span.SetStatus(otelcodes.Error, "source unavailable")
		return models.VehiclesPage{}, fmt.Errorf("%s: %w", op, err)
	}

	var groups []models.VehicleCatalogEntry
	switch name {
	case SourceMyRent:
		if s.lister == nil {
			return models.VehiclesPage{}, fmt.Errorf("%s: %w", op, derr.ErrUpstreamNotConfigured)
		}
		groups, err = s.lister.ListVehicles(ctx, ports.ListingQuery{
			Location: q.Location,
			Age:      q.Age,
			Channel:  q.Channel,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, "listing failed")
			return models.VehiclesPage{}, fmt.Errorf("%s: %w", op, err)
		}
	default:
		groups = s.catalog.Vehicles(q.Location)
	}

	page := paginate(groups, q.Skip, pageSize)
	span.SetAttributes(attribute.Int("vehicles.total", page.Total))
	return page, nil
}

func (s *CatalogService) Vehicle(_ context.Context, id string) (models.VehicleCatalogEntry, error) {
	const op = "service.Vehicle"

	entry, err := s.catalog.Vehicle(strings.TrimSpace(id))
	if err != nil {
		return models.VehicleCatalogEntry{}, fmt.Errorf("%s: %w", op, err)
	}
	return entry, nil
}

// Damages always answers, with an empty list for an unknown plate.
func (s *CatalogService) Damages(_ context.Context, plateOrVIN string) models.Damages {
	return models.Damages{
		Damages: s.catalog.Damages(strings.TrimSpace(plateOrVIN)),
		WireframeImage: models.WireframeImage{
			Image:  placeholderWireframe,
			Height: wireframeHeight,
			Width:  wireframeWidth,
		},
	}
}

func paginate(groups []models.VehicleCatalogEntry, skip, pageSize int) models.VehiclesPage {
	total := len(groups)

	start := min(skip, total)
	end := min(skip+pageSize, total)
	items := make([]models.VehicleCatalogEntry, 0, end-start)
	items = append(items, groups[start:end]...)

	page := models.VehiclesPage{
		Total:    total,
		Skip:     skip,
		PageSize: pageSize,
		HasNext:  skip+pageSize < total,
		Items:    items,
	}
	if page.HasNext {
		next := skip + pageSize
		page.NextSkip = &next
	}
	if skip > 0 {
		prev := max(0, skip-pageSize)
		page.PrevSkip = &prev
	}
	return page
}
