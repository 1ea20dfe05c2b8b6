package myrent

import (
	"context"
	"fmt"

	"github.com/Golden-Bit/myrent-SDK/internal/domain/coerce"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/Golden-Bit/myrent-SDK/internal/infrastructures/myrent/dto"
	"github.com/Golden-Bit/myrent-SDK/internal/infrastructures/myrent/http/client"
	"github.com/Golden-Bit/myrent-SDK/internal/infrastructures/myrent/mappers"
)

// Source serves quotes and locations from the upstream API in the normalized schema.
type Source struct {
	client     *client.Client
	vatPct     float64
	defaultAge int
}

func NewSource(client *client.Client, vatPct float64, defaultAge int) *Source {
	return &Source{
		client:     client,
		vatPct:     vatPct,
		defaultAge: defaultAge,
	}
}

func (s *Source) Quote(ctx context.Context, req models.QuoteRequest) (models.QuoteResult, error) {
	payload, err := s.client.Quotations(ctx, s.toDTO(req))
	if err != nil {
		return models.QuoteResult{}, fmt.Errorf("get quotations: %w", err)
	}

	return mappers.NormalizeQuotation(payload, req, mappers.Options{VATPct: s.vatPct}), nil
}

func (s *Source) Locations(ctx context.Context) ([]models.Location, error) {
	payload, err := s.client.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("get locations: %w", err)
	}

	return mappers.NormalizeLocations(payload), nil
}

func (s *Source) toDTO(req models.QuoteRequest) dto.QuotationRequest {
	age := s.defaultAge
	if req.Age != nil {
		age = *req.Age
	}

	return dto.QuotationRequest{
		DropOffLocation:         req.DropOffLocation,
		EndDate:                 coerce.FormatUpstream(req.End),
		PickupLocation:          req.PickupLocation,
		StartDate:               coerce.FormatUpstream(req.Start),
		Age:                     age,
		Channel:                 req.Channel,
		ShowPics:                setFlag(req.ShowPics),
		ShowOptionalImage:       setFlag(req.ShowOptionalImage),
		ShowVehicleParameter:    setFlag(req.ShowVehicleParameter),
		ShowVehicleExtraImage:   setFlag(req.ShowVehicleExtraImage),
		AgreementCoupon:         req.AgreementCoupon,
		DiscountValueWithoutVAT: req.DiscountValueWithoutVAT,
		MacroDescription:        req.MacroDescription,
		ShowBookingDiscount:     setFlag(req.ShowBookingDiscount),
		IsYoungDriverAge:        req.IsYoungDriverAge,
		IsSeniorDriverAge:       req.IsSeniorDriverAge,
	}
}

// setFlag leaves unset display flags out of the payload.
func setFlag(v bool) *bool {
	if !v {
		return nil
	}
	return &v
}
