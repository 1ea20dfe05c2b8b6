package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/Golden-Bit/myrent-SDK/internal/metrics"
)

type QuotationService struct {
	log     *zap.Logger
	sources *Sources
	metrics *metrics.Quoting
}

func NewQuotationService(log *zap.Logger, sources *Sources, m *metrics.Quoting) *QuotationService {
	if log == nil {
		log = zap.NewNop()
	}

	return &QuotationService{
		log:     log,
		sources: sources,
		metrics: m,
	}
}

// Quote validates the request and prices it against the named source.
func (s *QuotationService) Quote(ctx context.Context, req models.QuoteRequest, source string) (models.QuoteResult, error) {
	const op = "service.Quote"
	tracer := otel.Tracer("quote-api/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	req.PickupLocation = strings.TrimSpace(req.PickupLocation)
	req.DropOffLocation = strings.TrimSpace(req.DropOffLocation)

	name, provider, err := s.sources.Resolve(source)
	span.SetAttributes(
		attribute.String("quote.source", name),
		attribute.String("quote.pickup", req.PickupLocation),
		attribute.String("quote.dropoff", req.DropOffLocation),
	)

	logger := s.log.With(
		zap.String("op", op),
		zap.String("source", name),
		zap.String("pickup", req.PickupLocation),
		zap.String("dropoff", req.DropOffLocation),
	)

	if err != nil {
		logger.Warn("quote source unavailable", zap.Error(err))
		span.SetStatus(otelcodes.Error, "source unavailable")
		return models.QuoteResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := validateQuoteRequest(req); err != nil {
		logger.Warn("invalid quote request", zap.Error(err))
		span.SetStatus(otelcodes.Error, "invalid request")
		return models.QuoteResult{}, fmt.Errorf("%s: %w", op, err)
	}

	started := time.Now()
	result, err := provider.Quote(ctx, req)
	s.metrics.ObserveQuote(name, err, time.Since(started))
	if err != nil {
		logger.Warn("quote failed", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "quote failed")
		return models.QuoteResult{}, fmt.Errorf("%s: %w", op, err)
	}

	span.SetAttributes(attribute.Int("quote.vehicles_count", result.Total))
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("quote built",
		zap.Int("vehicles_count", result.Total),
		zap.Float64("best_total", result.TotalCharge.EstimatedTotalAmount),
	)
	return result, nil
}

func validateQuoteRequest(req models.QuoteRequest) error {
	if req.PickupLocation == "" || req.DropOffLocation == "" {
		return fmt.Errorf("%w: pickupLocation and dropOffLocation are required", derr.ErrInvalidRequest)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", derr.ErrInvalidRequest)
	}
	if !req.End.After(req.Start) {
		return derr.ErrInvalidDateRange
	}
	if req.Age != nil && *req.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", derr.ErrInvalidRequest)
	}
	return nil
}
