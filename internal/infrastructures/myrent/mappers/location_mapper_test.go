package mappers

import (
	"testing"
)

const locationsPayload = `{"result": [
  {
    "locationCode": "FCO",
    "locationName": "ROMA FIUMICINO",
    "locationType": "0",
    "latitude": "41.7999",
    "longitude": 12.2462,
    "isAirport": "true",
    "isAlwaysOpentrue": 0,
    "minimumLeadTimeInHour": "2",
    "openings": [
      {"dayOfTheWeek": 1, "dayOfTheWeekName": "Monday", "startTime": "08:00", "endTime": "20:00"},
      {"dayOfTheWeek": "2", "dayOfTheWeekName": "Tuesday", "startTime": "08:00"},
      "garbage"
    ],
    "closing": [],
    "festivity": [{"date": "2025-12-25"}]
  },
  {"locationCode": "MXP", "locationType": 5, "country": "SVIZZERA",
   "closing": [{"dayOfTheWeek": 7, "dayOfTheWeekName": "Sunday", "startTime": "13:01", "endTime": "23:59"}]},
  "skip me"
]}`

func TestNormalizeLocations(t *testing.T) {
	got := NormalizeLocations(decode(t, locationsPayload))
	if len(got) != 2 {
		t.Fatalf("unexpected locations count: got %d want 2", len(got))
	}

	fco := got[0]
	if fco.LocationCode != "FCO" || fco.LocationName != "ROMA FIUMICINO" {
		t.Fatalf("unexpected identity: %+v", fco)
	}
	if fco.LocationType != 3 {
		t.Fatalf("unexpected default location type: got %d want 3", fco.LocationType)
	}
	if fco.Country != "ITALIA" {
		t.Fatalf("unexpected default country: %q", fco.Country)
	}
	if fco.Latitude == nil || *fco.Latitude != 41.7999 {
		t.Fatalf("unexpected latitude: %v", fco.Latitude)
	}
	if !fco.IsAirport {
		t.Fatal("expected airport flag")
	}
	if fco.IsAlwaysOpen == nil || *fco.IsAlwaysOpen {
		t.Fatalf("unexpected always-open flag: %v", fco.IsAlwaysOpen)
	}
	if fco.MinimumLeadTimeInHour == nil || *fco.MinimumLeadTimeInHour != 2 {
		t.Fatalf("unexpected lead time: %v", fco.MinimumLeadTimeInHour)
	}
	if len(fco.Openings) != 1 || fco.Openings[0].DayOfTheWeekName != "Monday" {
		t.Fatalf("unexpected openings: %+v", fco.Openings)
	}
	if fco.Closing != nil {
		t.Fatalf("expected nil closing, got %+v", fco.Closing)
	}
	if len(fco.Festivity) != 1 {
		t.Fatalf("unexpected festivity: %+v", fco.Festivity)
	}

	mxp := got[1]
	if mxp.LocationType != 5 || mxp.Country != "SVIZZERA" {
		t.Fatalf("unexpected mxp: %+v", mxp)
	}
	if len(mxp.Closing) != 1 || mxp.Closing[0].DayOfTheWeek != 7 {
		t.Fatalf("unexpected closing: %+v", mxp.Closing)
	}
	if mxp.Openings == nil || len(mxp.Openings) != 0 {
		t.Fatalf("expected empty openings, got %+v", mxp.Openings)
	}
}

func TestNormalizeLocations_BareListAndGarbage(t *testing.T) {
	got := NormalizeLocations(decode(t, `[{"locationCode": "XRJ"}]`))
	if len(got) != 1 || got[0].LocationCode != "XRJ" {
		t.Fatalf("unexpected locations from bare list: %+v", got)
	}

	for _, raw := range []string{`{"message": "nope"}`, `"text"`, `null`} {
		got := NormalizeLocations(decode(t, raw))
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty slice for %s, got %+v", raw, got)
		}
	}
}
