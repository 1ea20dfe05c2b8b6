package mappers

import (
	"encoding/json"
	"testing"

	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveTotalCharge(t *testing.T) {
	cases := []struct {
		name      string
		tc        map[string]any
		wantPre   float64
		wantTotal float64
	}{
		{"taxable with rate total", map[string]any{"TaxableAmount": 100.0, "RateTotalAmount": 122.0, "EstimatedTotalAmount": 0.0}, 100, 122},
		{"taxable with rate and estimate", map[string]any{"TaxableAmount": 100.0, "RateTotalAmount": 122.0, "EstimatedTotalAmount": 125.0}, 100, 125},
		{"taxable with estimate only", map[string]any{"TaxableAmount": 100.0, "EstimatedTotalAmount": 130.0}, 100, 130},
		{"estimate larger than rate", map[string]any{"EstimatedTotalAmount": 122.0, "RateTotalAmount": 100.0}, 100, 122},
		{"rate larger than estimate", map[string]any{"EstimatedTotalAmount": 100.0, "RateTotalAmount": 122.0}, 100, 122},
		{"rate only", map[string]any{"RateTotalAmount": 122.0}, 100, 122},
		{"rate as string", map[string]any{"RateTotalAmount": "122"}, 100, 122},
		{"rate as json number", map[string]any{"RateTotalAmount": json.Number("122")}, 100, 122},
		{"estimate only", map[string]any{"EstimatedTotalAmount": 61.0}, 50, 61},
		{"taxable above rate falls to rate only", map[string]any{"TaxableAmount": 130.0, "RateTotalAmount": 122.0}, 100, 122},
		{"nothing usable", map[string]any{"RateTotalAmount": "n/a", "EstimatedTotalAmount": 0}, 0, 0},
		{"nil map", nil, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pre, total := ResolveTotalCharge(tc.tc, 22)
			assert.InDelta(t, tc.wantPre, pre, 1e-9)
			assert.InDelta(t, tc.wantTotal, total, 1e-9)
		})
	}
}

func TestResolveTotalChargeWithoutVAT(t *testing.T) {
	pre, total := ResolveTotalCharge(map[string]any{"RateTotalAmount": 80.0}, 0)
	assert.Equal(t, 80.0, pre)
	assert.Equal(t, 80.0, total)
}

func TestResolveTransmission(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"blank", "  ", ""},
		{"manual code", "M", "M"},
		{"automatic code", "a", "A"},
		{"italian manual", "MANUALE", "M"},
		{"italian automatic", " Automatico ", "A"},
		{"substring manual", "Semi-manual", "M"},
		{"substring automatic", "AUTOMATIZZATO", "A"},
		{"unknown string kept", "CVT", "CVT"},
		{"object description wins", map[string]any{"id": 2, "description": "MANUALE"}, "M"},
		{"object capitalised description", map[string]any{"Description": "Automatic"}, "A"},
		{"object code", map[string]any{"code": "A"}, "A"},
		{"object id manual", map[string]any{"id": 1}, "M"},
		{"object id automatic", map[string]any{"ID": "2"}, "A"},
		{"object unknown id", map[string]any{"id": 7}, "7"},
		{"empty object", map[string]any{}, ""},
		{"number manual", 1, "M"},
		{"float automatic", 2.0, "A"},
		{"json number", json.Number("2"), "A"},
		{"other number", 3, "3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveTransmission(tc.in))
		})
	}
}

func TestResolveMakeModel(t *testing.T) {
	cases := []struct {
		name string
		veh  map[string]any
		want string
	}{
		{"object", map[string]any{"VehMakeModel": map[string]any{"Name": "Fiat 500"}}, "Fiat 500"},
		{"object lowercase", map[string]any{"VehMakeModel": map[string]any{"name": "Fiat Panda"}}, "Fiat Panda"},
		{"list", map[string]any{"VehMakeModel": []any{map[string]any{"Name": "VW Golf"}, map[string]any{"Name": "other"}}}, "VW Golf"},
		{"empty list falls back", map[string]any{"VehMakeModel": []any{}, "groupWebDescription": "Compact"}, "Compact"},
		{"object without name falls back", map[string]any{"VehMakeModel": map[string]any{}, "groupWebDescription": "SUV"}, "SUV"},
		{"nothing", map[string]any{}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveMakeModel(tc.veh))
		})
	}
}

func TestResolveVehicleID(t *testing.T) {
	assert.Equal(t, models.VehicleID("123"), ResolveVehicleID(map[string]any{"id": 123.0}, map[string]any{"id": "K-1"}, "CDMR"))
	assert.Equal(t, models.VehicleID("K-1"), ResolveVehicleID(map[string]any{}, map[string]any{"id": "K-1"}, "CDMR"))
	assert.Equal(t, models.VehicleID("CDMR"), ResolveVehicleID(map[string]any{}, map[string]any{}, "CDMR"))
	assert.Equal(t, models.VehicleID("CDMR"), ResolveVehicleID(map[string]any{"id": ""}, map[string]any{"id": "K-1"}, "CDMR"))
	assert.Equal(t, models.VehicleID("CDMR"), ResolveVehicleID(nil, nil, "CDMR"))
}

func TestResolveCodeAndNationalCode(t *testing.T) {
	gp := map[string]any{"internationalCode": "IFAR", "nationalCode": "F"}

	assert.Equal(t, "CDMR", ResolveCode(map[string]any{"Code": "CDMR"}, gp))
	assert.Equal(t, "IFAR", ResolveCode(map[string]any{}, gp))
	assert.Equal(t, "", ResolveCode(nil, nil))

	assert.Equal(t, "C", ResolveNationalCode(map[string]any{"nationalCode": "C"}, gp))
	assert.Equal(t, "F", ResolveNationalCode(map[string]any{}, gp))
	assert.Equal(t, "HATCH", ResolveNationalCode(map[string]any{"VendorCarType": "HATCH"}, nil))
}

func TestResolveOptional(t *testing.T) {
	full := ResolveOptional(map[string]any{
		"Charge": map[string]any{
			"Amount":                "24.456",
			"CurrencyCode":          "USD",
			"Description":           "CHILD SEAT",
			"IncludedInEstTotalInd": "true",
			"TaxInclusive":          1,
		},
		"Equipment": map[string]any{
			"Description":    "Seggiolino",
			"EquipType":      "BABY",
			"Quantity":       "2",
			"isMultipliable": true,
			"optionalImage":  "https://img/seat.png",
		},
	}, true)

	assert.Equal(t, 24.46, full.Charge.Amount)
	assert.Equal(t, "USD", full.Charge.CurrencyCode)
	assert.Equal(t, "CHILD SEAT", full.Charge.Description)
	assert.True(t, full.Charge.IncludedInEstTotalInd)
	assert.False(t, full.Charge.IncludedInRate)
	assert.True(t, full.Charge.TaxInclusive)
	assert.Equal(t, "Seggiolino", full.Equipment.Description)
	assert.Equal(t, "BABY", full.Equipment.EquipType)
	assert.Equal(t, 2, full.Equipment.Quantity)
	assert.True(t, full.Equipment.IsMultipliable)
	assert.Equal(t, "https://img/seat.png", full.Equipment.OptionalImage)

	hidden := ResolveOptional(map[string]any{
		"Equipment": map[string]any{"optionalImage": "https://img/x.png", "Description": "GPS"},
	}, false)
	assert.Empty(t, hidden.Equipment.OptionalImage)
	assert.Equal(t, "GPS", hidden.Charge.Description)
	assert.Equal(t, "EUR", hidden.Charge.CurrencyCode)
	assert.Equal(t, "GEN", hidden.Equipment.EquipType)

	byCode := ResolveOptional(map[string]any{"Equipment": map[string]any{"Code": "SNOW"}}, false)
	assert.Equal(t, "SNOW", byCode.Charge.Description)
	assert.Equal(t, "SNOW", byCode.Equipment.Description)
	assert.Equal(t, "SNOW", byCode.Equipment.EquipType)

	empty := ResolveOptional(map[string]any{}, false)
	assert.Equal(t, "OPTIONAL", empty.Charge.Description)
	assert.Equal(t, "OPTIONAL", empty.Equipment.Description)
	assert.Equal(t, 0.0, empty.Charge.Amount)
}
