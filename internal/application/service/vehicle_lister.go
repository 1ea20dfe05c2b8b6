package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/ports"
	"github.com/Golden-Bit/myrent-SDK/internal/metrics"
)

// ProbeGrid is the set of quote windows issued to discover a location's fleet.
type ProbeGrid struct {
	StartOffsetsDays []int
	DurationsDays    []int
	HourUTC          int
}

func DefaultProbeGrid() ProbeGrid {
	return ProbeGrid{
		StartOffsetsDays: []int{5, 10},
		DurationsDays:    []int{2, 4, 6, 8},
		HourUTC:          10,
	}
}

type probeWindow struct {
	offset   int
	duration int
	start    time.Time
	end      time.Time
}

func (g ProbeGrid) windows(now time.Time) []probeWindow {
	now = now.UTC()
	base := time.Date(now.Year(), now.Month(), now.Day(), g.HourUTC, 0, 0, 0, time.UTC)

	out := make([]probeWindow, 0, len(g.StartOffsetsDays)*len(g.DurationsDays))
	for _, off := range g.StartOffsetsDays {
		start := base.AddDate(0, 0, off)
		for _, dur := range g.DurationsDays {
			out = append(out, probeWindow{
				offset:   off,
				duration: dur,
				start:    start,
				end:      start.AddDate(0, 0, dur),
			})
		}
	}
	return out
}

// VehicleLister synthesizes a per-location fleet listing from a quote-only
// upstream by probing a grid of rental windows and merging the offers.
type VehicleLister struct {
	log        *zap.Logger
	source     ports.QuoteSource
	cache      ports.ListingCache
	cacheTTL   time.Duration
	grid       ProbeGrid
	defaultAge int
	metrics    *metrics.Quoting
	now        func() time.Time
}

func NewVehicleLister(log *zap.Logger, source ports.QuoteSource, cache ports.ListingCache, cacheTTL time.Duration, grid ProbeGrid, defaultAge int, m *metrics.Quoting) *VehicleLister {
	if log == nil {
		log = zap.NewNop()
	}
	if len(grid.StartOffsetsDays) == 0 || len(grid.DurationsDays) == 0 {
		grid = DefaultProbeGrid()
	}
	if defaultAge <= 0 {
		defaultAge = 30
	}

	return &VehicleLister{
		log:        log,
		source:     source,
		cache:      cache,
		cacheTTL:   cacheTTL,
		grid:       grid,
		defaultAge: defaultAge,
		metrics:    m,
		now:        time.Now,
	}
}

func (l *VehicleLister) ListVehicles(ctx context.Context, query ports.ListingQuery) ([]models.VehicleCatalogEntry, error) {
	const op = "service.ListVehicles"
	tracer := otel.Tracer("quote-api/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	key := ports.ListingKey{
		Location: strings.ToUpper(strings.TrimSpace(query.Location)),
		Age:      query.Age,
		Channel:  strings.ToUpper(strings.TrimSpace(query.Channel)),
	}
	if key.Age <= 0 {
		key.Age = l.defaultAge
	}
	span.SetAttributes(
		attribute.String("listing.location", key.Location),
		attribute.Int("listing.age", key.Age),
		attribute.String("listing.channel", key.Channel),
	)

	logger := l.log.With(
		zap.String("op", op),
		zap.String("location", key.Location),
		zap.Int("age", key.Age),
		zap.String("channel", key.Channel),
	)

	if key.Location == "" {
		span.SetStatus(otelcodes.Error, "empty location")
		return nil, fmt.Errorf("%s: %w: location is required", op, derr.ErrInvalidRequest)
	}
	if l.source == nil {
		span.SetStatus(otelcodes.Error, "no quote source")
		return nil, fmt.Errorf("%s: %w", op, derr.ErrUpstreamNotConfigured)
	}

	if l.cache != nil {
		cached, err := l.cache.Get(ctx, key)
		if err == nil {
			logger.Info("listing cache hit")
			span.AddEvent("listing.cache.hit")
			l.metrics.IncCacheLookup(true)
			return cached, nil
		}
		if errors.Is(err, derr.ErrListingNotCached) {
			logger.Info("listing cache miss")
			span.AddEvent("listing.cache.miss")
			l.metrics.IncCacheLookup(false)
		} else {
			logger.Warn("listing cache read failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	windows := l.grid.windows(l.now())
	merged := newListingMerge()
	failures := 0
	var lastErr error

	for _, w := range windows {
		result, err := l.source.Quote(ctx, models.QuoteRequest{
			PickupLocation:  key.Location,
			DropOffLocation: key.Location,
			Start:           w.start,
			End:             w.end,
			Age:             &key.Age,
			Channel:         key.Channel,
		})
		l.metrics.IncProbe(err)
		if err != nil {
			failures++
			lastErr = err
			logger.Warn("listing probe failed",
				zap.Int("offset_days", w.offset),
				zap.Int("duration_days", w.duration),
				zap.Error(err),
			)
			span.AddEvent(
				"listing.probe.error",
				trace.WithAttributes(
					attribute.Int("listing.offset_days", w.offset),
					attribute.Int("listing.duration_days", w.duration),
				),
			)
			span.RecordError(err)
			continue
		}

		for _, offer := range result.Vehicles {
			merged.add(entryFromOffer(offer, key.Location))
		}
	}

	if failures == len(windows) {
		span.SetStatus(otelcodes.Error, "all probes failed")
		return nil, fmt.Errorf("%s: %w: %d probes failed: %w", op, derr.ErrListingUnavailable, failures, lastErr)
	}

	out := merged.sorted()

	if l.cache != nil {
		if err := l.cache.Set(ctx, key, out, l.cacheTTL); err != nil {
			logger.Warn("listing cache write failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	span.SetAttributes(attribute.Int("listing.vehicles_count", len(out)))
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("vehicle listing built",
		zap.Int("vehicles_count", len(out)),
		zap.Int("probe_failures", failures),
	)
	return out, nil
}

// entryFromOffer returns ok=false for offers without a vehicle code.
func entryFromOffer(offer models.VehicleOffer, location string) (models.VehicleCatalogEntry, bool) {
	v := offer.Vehicle
	if v.Code == "" {
		return models.VehicleCatalogEntry{}, false
	}

	name := v.Model
	if name == "" && len(v.VehMakeModel) > 0 {
		name = v.VehMakeModel[0].Name
	}

	image := v.ImageURL
	if offer.GroupPic != nil && offer.GroupPic.URL != "" {
		image = offer.GroupPic.URL
	}

	var rate *float64
	if offer.Reference.Calculated != nil {
		r := offer.Reference.Calculated.BaseDaily
		rate = &r
	}

	return models.VehicleCatalogEntry{
		ID:                v.ID,
		NationalCode:      v.NationalCode,
		InternationalCode: v.Code,
		DisplayName:       name,
		VendorMacro:       v.MacroGroup,
		VehicleType:       v.CarType,
		Seats:             v.Seats,
		Doors:             v.Doors,
		Transmission:      v.Transmission,
		Fuel:              v.Fuel,
		Aircon:            v.Aircon,
		ImageURL:          image,
		DailyRate:         rate,
		Locations:         []string{location},
	}, true
}

type listingMerge struct {
	order []string
	byKey map[string]*models.VehicleCatalogEntry
}

func newListingMerge() *listingMerge {
	return &listingMerge{byKey: make(map[string]*models.VehicleCatalogEntry)}
}

func (m *listingMerge) add(item models.VehicleCatalogEntry, ok bool) {
	if !ok {
		return
	}
	key := item.Key()

	existing, seen := m.byKey[key]
	if !seen {
		m.byKey[key] = &item
		m.order = append(m.order, key)
		return
	}

	fillString(&existing.NationalCode, item.NationalCode)
	fillString(&existing.DisplayName, item.DisplayName)
	fillString(&existing.VendorMacro, item.VendorMacro)
	fillString(&existing.VehicleType, item.VehicleType)
	fillString(&existing.Transmission, item.Transmission)
	fillString(&existing.Fuel, item.Fuel)
	fillString(&existing.ImageURL, item.ImageURL)
	if existing.Seats == 0 {
		existing.Seats = item.Seats
	}
	if existing.Doors == 0 {
		existing.Doors = item.Doors
	}
	if existing.Aircon == nil {
		existing.Aircon = item.Aircon
	}

	switch {
	case existing.DailyRate == nil:
		existing.DailyRate = item.DailyRate
	case item.DailyRate != nil && *item.DailyRate < *existing.DailyRate:
		existing.DailyRate = item.DailyRate
	}

	for _, loc := range item.Locations {
		if !existing.ServesLocation(loc) {
			existing.Locations = append(existing.Locations, loc)
		}
	}
}

// sorted orders by (macro, code) so pagination is stable across calls.
func (m *listingMerge) sorted() []models.VehicleCatalogEntry {
	out := make([]models.VehicleCatalogEntry, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, *m.byKey[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].VendorMacro != out[j].VendorMacro {
			return out[i].VendorMacro < out[j].VendorMacro
		}
		return out[i].InternationalCode < out[j].InternationalCode
	})
	return out
}

func fillString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
