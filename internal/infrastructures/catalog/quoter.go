package catalog

import (
	"context"
	"strings"

	"github.com/Golden-Bit/myrent-SDK/internal/application/pricing"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/coerce"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/cespare/xxhash/v2"
)

const groupPicSpace = 1000

// Quote prices every group serving the pickup location. It never fails; an
// empty result means nothing matched.
func (c *Catalog) Quote(_ context.Context, req models.QuoteRequest) (models.QuoteResult, error) {
	days := pricing.DurationDays(req.Start, req.End)
	macro := strings.ToLower(strings.TrimSpace(req.MacroDescription))

	offers := make([]models.VehicleOffer, 0)
	for _, g := range c.groups {
		if !g.ServesLocation(req.PickupLocation) {
			continue
		}
		if macro != "" && strings.ToLower(g.VendorMacro) != macro {
			continue
		}
		offers = append(offers, c.buildOffer(g, req))
	}

	return models.QuoteResult{
		Total:          len(offers),
		PickUpLocation: req.PickupLocation,
		ReturnLocation: req.DropOffLocation,
		PickUpDateTime: coerce.FormatWrapper(req.Start),
		ReturnDateTime: coerce.FormatWrapper(req.End),
		Vehicles:       offers,
		Optionals:      c.defaultOptionals(days),
		TotalCharge:    pricing.BestPrice(offers),
	}, nil
}

func (c *Catalog) buildOffer(g models.VehicleCatalogEntry, req models.QuoteRequest) models.VehicleOffer {
	offer := models.VehicleOffer{
		Status:  c.rules.Status(g.InternationalCode, req.PickupLocation, req.Start),
		Vehicle: bookingVehicle(g),
	}

	if g.DailyRate != nil {
		calc := c.rules.Breakdown(*g.DailyRate, req, c.vatPct)
		offer.Reference.Calculated = &calc
	}

	if req.ShowVehicleParameter && len(g.VehicleParameters) > 0 {
		offer.VehicleParameter = make([]models.VehicleParameter, 0, len(g.VehicleParameters))
		for _, p := range g.VehicleParameters {
			offer.VehicleParameter = append(offer.VehicleParameter, models.VehicleParameter{
				Name:        p.Name,
				Description: p.Description,
				Position:    p.Position,
			})
		}
	}

	if req.ShowPics {
		offer.GroupPic = &models.GroupPic{
			ID:  GroupPicID(g.InternationalCode),
			URL: g.ImageURL,
		}
	}

	if req.ShowVehicleExtraImage {
		offer.VehicleExtraImage = []string{}
	}

	return offer
}

func bookingVehicle(g models.VehicleCatalogEntry) models.BookingVehicle {
	km := 0
	v := models.BookingVehicle{
		ID:           g.ID,
		Code:         g.InternationalCode,
		CodeContext:  "ACRISS",
		NationalCode: g.NationalCode,
		VehMakeModel: []models.VehMakeModel{{Name: g.DisplayName}},
		Model:        g.DisplayName,
		MacroGroup:   g.VendorMacro,
		CarType:      g.VehicleType,
		Seats:        g.Seats,
		Doors:        g.Doors,
		Transmission: g.Transmission,
		Fuel:         g.Fuel,
		Aircon:       g.Aircon,
		ImageURL:     g.ImageURL,
		DailyRate:    g.DailyRate,
		Km:           &km,
		Color:        g.Color,
		Locations:    append([]string{}, g.Locations...),
		Plates:       append([]string{}, g.Plates...),
	}
	return v
}

func (c *Catalog) defaultOptionals(days int) []models.OptionalAddOn {
	d := float64(days)
	return []models.OptionalAddOn{
		{
			Charge: models.Charge{
				Amount:                8 * d,
				CurrencyCode:          c.currency,
				Description:           "CHILD SEAT",
				IncludedInEstTotalInd: true,
			},
			Equipment: models.Equipment{
				Description:    "Seggiolino bimbo",
				EquipType:      "BABY",
				Quantity:       1,
				IsMultipliable: true,
			},
		},
		{
			Charge: models.Charge{
				Amount:                12 * d,
				CurrencyCode:          c.currency,
				Description:           "ADDITIONAL DRIVER",
				IncludedInEstTotalInd: true,
			},
			Equipment: models.Equipment{
				Description: "Guidatore aggiuntivo",
				EquipType:   "ADDITIONAL",
				Quantity:    1,
			},
		},
	}
}

// GroupPicID is a stable picture id in [0, 1000) derived from the group code.
func GroupPicID(code string) int {
	return int(xxhash.Sum64String(code) % groupPicSpace)
}
