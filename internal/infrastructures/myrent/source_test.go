package myrent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derr "github.com/Golden-Bit/myrent-SDK/internal/domain/errors"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/Golden-Bit/myrent-SDK/internal/infrastructures/myrent/http/client"
)

const quotationBody = `{"status": "success", "data": {
  "PickUpLocation": "FCO",
  "ReturnLocation": "FCO",
  "PickUpDateTime": "2025-10-12T10:00:00",
  "ReturnDateTime": "2025-10-14T10:00:00",
  "Vehicles": [{
    "Status": "Available",
    "Vehicle": {"Code": "EDMR", "VehMakeModel": [{"Name": "Fiat Panda"}], "transmission": "MANUALE"},
    "TotalCharge": {"RateTotalAmount": 122}
  }]
}}`

func newUpstream(t *testing.T, onQuote func(body map[string]any)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case client.AuthPath:
			_, _ = w.Write([]byte(`{"result": {"tokenValue": "tok"}}`))
		case client.QuotationsPath:
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if onQuote != nil {
				onQuote(body)
			}
			_, _ = w.Write([]byte(quotationBody))
		case client.LocationsPath:
			_, _ = w.Write([]byte(`{"result": [{"locationCode": "FCO", "locationName": "Fiumicino"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func newSource(srv *httptest.Server) *Source {
	c := client.NewClient(client.Config{
		BaseURL:     srv.URL,
		UserID:      "u",
		Password:    "p",
		CompanyCode: "sul",
		Backoff:     time.Millisecond,
	}, srv.Client(), nil)
	return NewSource(c, 22, 30)
}

func TestSourceQuote(t *testing.T) {
	var sent map[string]any
	srv := newUpstream(t, func(body map[string]any) { sent = body })
	defer srv.Close()

	start := time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC)
	got, err := newSource(srv).Quote(context.Background(), models.QuoteRequest{
		PickupLocation:          "FCO",
		DropOffLocation:         "FCO",
		Start:                   start,
		End:                     start.Add(48 * time.Hour),
		DiscountValueWithoutVAT: "10",
		ShowPics:                true,
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-12T10:00:00", sent["startDate"])
	assert.Equal(t, "2025-10-14T10:00:00", sent["endDate"])
	assert.Equal(t, float64(30), sent["age"])
	assert.Equal(t, "sul", sent["channel"])
	assert.Equal(t, "10", sent["discountValueWithoutVat"])
	assert.Equal(t, true, sent["showPics"])
	assert.NotContains(t, sent, "showVehicleParameter")

	require.Equal(t, 1, got.Total)
	offer := got.Vehicles[0]
	assert.Equal(t, models.StatusAvailable, offer.Status)
	assert.Equal(t, "Fiat Panda", offer.Vehicle.Model)
	assert.Equal(t, "M", offer.Vehicle.Transmission)
	require.NotNil(t, offer.Reference.Calculated)
	assert.Equal(t, 2, offer.Reference.Calculated.Days)
	assert.Equal(t, 100.0, offer.Reference.Calculated.PreVAT)
	assert.Equal(t, 122.0, offer.Reference.Calculated.Total)
}

func TestSourceQuoteExplicitAge(t *testing.T) {
	var sent map[string]any
	srv := newUpstream(t, func(body map[string]any) { sent = body })
	defer srv.Close()

	age := 22
	start := time.Date(2025, 10, 12, 10, 0, 0, 0, time.UTC)
	_, err := newSource(srv).Quote(context.Background(), models.QuoteRequest{
		PickupLocation:  "FCO",
		DropOffLocation: "FCO",
		Start:           start,
		End:             start.Add(24 * time.Hour),
		Age:             &age,
		Channel:         "WEB",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(22), sent["age"])
	assert.Equal(t, "WEB", sent["channel"])
}

func TestSourceLocations(t *testing.T) {
	srv := newUpstream(t, nil)
	defer srv.Close()

	got, err := newSource(srv).Locations(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FCO", got[0].LocationCode)
}

func TestSourceQuotePropagatesUpstreamErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newSource(srv).Quote(context.Background(), models.QuoteRequest{})
	if !errors.Is(err, derr.ErrUpstreamAuth) {
		t.Fatalf("expected ErrUpstreamAuth, got %v", err)
	}
}
