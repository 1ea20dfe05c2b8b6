package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Golden-Bit/myrent-SDK/internal/application/pricing"
	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `{
  "currency": "EUR",
  "vat_percentage": 22,
  "groups": [
    {"id": 1, "international_code": "MBMR", "display_name": "Fiat 500", "vendor_macro": "ECONOMY",
     "daily_rate": 30, "locations": ["FCO", "MXP"], "plates": ["AA111AA"],
     "vehicle_parameters": [{"name": "Bagagli", "description": "1", "position": 1}],
     "damages": {"AA111AA": [{"damageType": "DENT", "x": 3}, {"description": "Scratch"}]}},
    {"id": 2, "international_code": "CDMR", "display_name": "VW Golf", "vendor_macro": "Compact",
     "daily_rate": 46, "locations": ["FCO"]},
    {"id": "K-3", "international_code": "IFAR", "display_name": "Jeep", "vendor_macro": "SUV",
     "locations": ["FCO"]},
    {"id": 4, "international_code": "SVMR", "vendor_macro": "VAN", "daily_rate": 110, "locations": ["pmo100"]}
  ]
}`

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Parse(strings.NewReader(testCatalog), pricing.DefaultRules())
	require.NoError(t, err)
	return c
}

func quoteRequest(pickup, dropoff string, days int) models.QuoteRequest {
	start := time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC)
	age := 30
	return models.QuoteRequest{
		PickupLocation:  pickup,
		DropOffLocation: dropoff,
		Start:           start,
		End:             start.Add(time.Duration(days) * 24 * time.Hour),
		Age:             &age,
		Channel:         "WEB_DEMO",
	}
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader(`{"groups": []}`), pricing.DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "EUR", c.Currency())
	assert.Equal(t, 22.0, c.VATPct())

	_, err = Parse(strings.NewReader(`{"groups": [{"id": 1}]}`), pricing.DefaultRules())
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(`not json`), pricing.DefaultRules())
	assert.Error(t, err)
}

func TestLoadBundledCatalog(t *testing.T) {
	c, err := Load("../../../data/vehicles.json", pricing.DefaultRules())
	require.NoError(t, err)

	all := c.Vehicles("")
	require.NotEmpty(t, all)
	for _, g := range all {
		assert.NotEmpty(t, g.InternationalCode)
	}

	suv, err := c.Vehicle("5")
	require.NoError(t, err)
	assert.Contains(t, suv.Extra, "insurance_tier")
}

func TestQuoteEndToEnd(t *testing.T) {
	c := newTestCatalog(t)

	res, err := c.Quote(context.Background(), quoteRequest("FCO", "MXP", 3))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, "FCO", res.PickUpLocation)
	assert.Equal(t, "MXP", res.ReturnLocation)
	assert.Equal(t, "2025-10-12T10:00:00Z", res.PickUpDateTime)
	assert.Equal(t, "2025-10-15T10:00:00Z", res.ReturnDateTime)

	var minTotal, minPre float64
	priced := 0
	for _, o := range res.Vehicles {
		assert.Contains(t, []models.AvailabilityStatus{models.StatusAvailable, models.StatusUnavailable}, o.Status)
		assert.Equal(t, "ACRISS", o.Vehicle.CodeContext)
		if o.Reference.Calculated == nil {
			continue
		}
		calc := o.Reference.Calculated
		assert.Equal(t, 3, calc.Days)
		if priced == 0 || calc.Total < minTotal {
			minTotal, minPre = calc.Total, calc.PreVAT
		}
		priced++
	}
	require.Equal(t, 2, priced, "group without daily rate has no breakdown")
	assert.Equal(t, minTotal, res.TotalCharge.EstimatedTotalAmount)
	assert.Equal(t, minPre, res.TotalCharge.RateTotalAmount)

	require.Len(t, res.Optionals, 2)
	assert.Equal(t, 24.0, res.Optionals[0].Charge.Amount)
	assert.Equal(t, "EUR", res.Optionals[0].Charge.CurrencyCode)
	assert.True(t, res.Optionals[0].Equipment.IsMultipliable)
	assert.Equal(t, 36.0, res.Optionals[1].Charge.Amount)
	assert.False(t, res.Optionals[1].Equipment.IsMultipliable)
}

func TestQuoteFilters(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	req := quoteRequest("FCO", "FCO", 2)
	req.MacroDescription = "  compact "
	res, err := c.Quote(ctx, req)
	require.NoError(t, err)
	require.Len(t, res.Vehicles, 1)
	assert.Equal(t, "CDMR", res.Vehicles[0].Vehicle.Code)

	res, err = c.Quote(ctx, quoteRequest("MXP", "MXP", 2))
	require.NoError(t, err)
	require.Len(t, res.Vehicles, 1)
	assert.Equal(t, "MBMR", res.Vehicles[0].Vehicle.Code)

	res, err = c.Quote(ctx, quoteRequest("ZZZ", "ZZZ", 2))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	assert.Empty(t, res.Vehicles)
	assert.Equal(t, models.TotalCharge{}, res.TotalCharge)
}

func TestQuoteDisplayFlags(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	plain, err := c.Quote(ctx, quoteRequest("MXP", "MXP", 1))
	require.NoError(t, err)
	require.Len(t, plain.Vehicles, 1)
	assert.Nil(t, plain.Vehicles[0].GroupPic)
	assert.Nil(t, plain.Vehicles[0].VehicleParameter)
	assert.Nil(t, plain.Vehicles[0].VehicleExtraImage)

	req := quoteRequest("MXP", "MXP", 1)
	req.ShowPics = true
	req.ShowVehicleParameter = true
	req.ShowVehicleExtraImage = true
	rich, err := c.Quote(ctx, req)
	require.NoError(t, err)

	offer := rich.Vehicles[0]
	require.NotNil(t, offer.GroupPic)
	assert.Equal(t, GroupPicID("MBMR"), offer.GroupPic.ID)
	assert.Less(t, offer.GroupPic.ID, 1000)
	require.Len(t, offer.VehicleParameter, 1)
	assert.Equal(t, "Bagagli", offer.VehicleParameter[0].Name)
	assert.NotNil(t, offer.VehicleExtraImage)
	assert.Empty(t, offer.VehicleExtraImage)
}

func TestVehiclesAndLookup(t *testing.T) {
	c := newTestCatalog(t)

	assert.Len(t, c.Vehicles(""), 4)
	assert.Len(t, c.Vehicles("fco"), 3)
	assert.Len(t, c.Vehicles("PMO100"), 1)

	v, err := c.Vehicle("K-3")
	require.NoError(t, err)
	assert.Equal(t, "IFAR", v.InternationalCode)

	_, err = c.Vehicle("99")
	assert.True(t, errors.Is(err, derr.ErrVehicleNotFound))
}

func TestDamages(t *testing.T) {
	c := newTestCatalog(t)

	points := c.Damages("AA111AA")
	require.Len(t, points, 2)
	assert.Equal(t, "N/A", points[0].Description)
	assert.Equal(t, "DENT", points[0].DamageType)
	assert.Equal(t, "Scratch", points[1].Description)

	assert.Empty(t, c.Damages("UNKNOWN"))
	assert.NotNil(t, c.Damages("UNKNOWN"))
}

func TestLocations(t *testing.T) {
	c := newTestCatalog(t)

	locs, err := c.Locations(context.Background())
	require.NoError(t, err)
	require.Len(t, locs, 6)

	codes := make([]string, 0, len(locs))
	for _, l := range locs {
		codes = append(codes, l.LocationCode)
		assert.Equal(t, 3, l.LocationType)
		assert.Equal(t, "ITALIA", l.Country)
		assert.Len(t, l.Openings, 7)
	}
	assert.Equal(t, []string{"XRJ", "FCO", "MXP", "FLR", "PMO100", "AHO100"}, codes)
	assert.Equal(t, "13:00", locs[0].Openings[6].EndTime)
	assert.Len(t, locs[0].Closing, 2)
	assert.Nil(t, locs[1].Closing)
}
