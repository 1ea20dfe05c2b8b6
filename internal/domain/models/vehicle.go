package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// VehicleID is a group identifier that may arrive as a number or a string.
// Canonical integers are written back as JSON numbers.
type VehicleID string

func (id VehicleID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(n, 10) == s {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id *VehicleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = VehicleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = VehicleID(n.String())
	return nil
}

type VehMakeModel struct {
	Name string `json:"Name"`
}

type BookingVehicle struct {
	ID           VehicleID      `json:"id,omitempty"`
	Code         string         `json:"Code"`
	CodeContext  string         `json:"CodeContext"`
	NationalCode string         `json:"nationalCode,omitempty"`
	VehMakeModel []VehMakeModel `json:"VehMakeModel"`
	Model        string         `json:"model,omitempty"`
	Brand        string         `json:"brand,omitempty"`
	Version      string         `json:"version,omitempty"`
	MacroGroup   string         `json:"VendorCarMacroGroup,omitempty"`
	CarType      string         `json:"VendorCarType,omitempty"`
	Seats        int            `json:"seats,omitempty"`
	Doors        int            `json:"doors,omitempty"`
	Transmission string         `json:"transmission,omitempty"`
	Fuel         string         `json:"fuel,omitempty"`
	Aircon       *bool          `json:"aircon,omitempty"`
	ImageURL     string         `json:"imageUrl,omitempty"`
	DailyRate    *float64       `json:"dailyRate,omitempty"`
	Km           *int           `json:"km,omitempty"`
	Color        string         `json:"color,omitempty"`
	PlateNo      string         `json:"plate_no,omitempty"`
	ChasisNo     string         `json:"chasis_no,omitempty"`
	Locations    []string       `json:"locations"`
	Plates       []string       `json:"plates"`
}

// VehicleParameter keeps the upstream key spelling, trailing " :" included.
type VehicleParameter struct {
	Name        string `json:"name :"`
	Description string `json:"description :"`
	Position    int    `json:"position :"`
	FileURL     string `json:"fileUrl :"`
}

type VehicleParameterRaw struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

type DamagePoint struct {
	Description      string   `json:"description"`
	DamageType       string   `json:"damageType,omitempty"`
	DamageDictionary string   `json:"damageDictionary,omitempty"`
	X                *int     `json:"x,omitempty"`
	Y                *int     `json:"y,omitempty"`
	PercentageX      *float64 `json:"percentage_x,omitempty"`
	PercentageY      *float64 `json:"percentage_y,omitempty"`
}

type WireframeImage struct {
	Image  string `json:"image"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type Damages struct {
	Damages        []DamagePoint  `json:"damages"`
	WireframeImage WireframeImage `json:"wireframeImage"`
}

// VehicleCatalogEntry is one vehicle group of the static catalog, or one
// synthesized by the listing prober. Keys outside the known set are kept in
// Extra and written back unchanged.
type VehicleCatalogEntry struct {
	ID                VehicleID                `json:"id,omitempty"`
	NationalCode      string                   `json:"national_code,omitempty"`
	InternationalCode string                   `json:"international_code"`
	Description       string                   `json:"description,omitempty"`
	DisplayName       string                   `json:"display_name,omitempty"`
	VendorMacro       string                   `json:"vendor_macro,omitempty"`
	VehicleType       string                   `json:"vehicle_type,omitempty"`
	Seats             int                      `json:"seats,omitempty"`
	Doors             int                      `json:"doors,omitempty"`
	Transmission      string                   `json:"transmission,omitempty"`
	Fuel              string                   `json:"fuel,omitempty"`
	Aircon            *bool                    `json:"aircon,omitempty"`
	ImageURL          string                   `json:"image_url,omitempty"`
	DailyRate         *float64                 `json:"daily_rate,omitempty"`
	Color             string                   `json:"color,omitempty"`
	Locations         []string                 `json:"locations"`
	Plates            []string                 `json:"plates,omitempty"`
	VehicleParameters []VehicleParameterRaw    `json:"vehicle_parameters,omitempty"`
	Damages           map[string][]DamagePoint `json:"damages,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type catalogEntryFields VehicleCatalogEntry

var catalogEntryKeys = map[string]struct{}{
	"id": {}, "national_code": {}, "international_code": {}, "description": {},
	"display_name": {}, "vendor_macro": {}, "vehicle_type": {}, "seats": {},
	"doors": {}, "transmission": {}, "fuel": {}, "aircon": {}, "image_url": {},
	"daily_rate": {}, "color": {}, "locations": {}, "plates": {},
	"vehicle_parameters": {}, "damages": {},
}

func (e *VehicleCatalogEntry) UnmarshalJSON(data []byte) error {
	var fields catalogEntryFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	for k, v := range all {
		if _, known := catalogEntryKeys[k]; known {
			continue
		}
		if fields.Extra == nil {
			fields.Extra = make(map[string]json.RawMessage)
		}
		fields.Extra[k] = v
	}

	*e = VehicleCatalogEntry(fields)
	return nil
}

func (e VehicleCatalogEntry) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(catalogEntryFields(e))
	if err != nil || len(e.Extra) == 0 {
		return base, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range e.Extra {
		if _, known := catalogEntryKeys[k]; known {
			continue
		}
		merged[k] = v
	}

	return json.Marshal(merged)
}

// Key identifies the entry when merging listings.
func (e VehicleCatalogEntry) Key() string {
	if e.ID != "" {
		return string(e.ID)
	}
	return e.InternationalCode
}

func (e VehicleCatalogEntry) ServesLocation(code string) bool {
	for _, l := range e.Locations {
		if l == code {
			return true
		}
	}
	return false
}

type VehiclesPage struct {
	Total    int                   `json:"total"`
	Skip     int                   `json:"skip"`
	PageSize int                   `json:"page_size"`
	HasNext  bool                  `json:"has_next"`
	NextSkip *int                  `json:"next_skip"`
	PrevSkip *int                  `json:"prev_skip"`
	Items    []VehicleCatalogEntry `json:"items"`
}

// Clone returns a copy that shares no slices, maps or pointers with e.
func (e VehicleCatalogEntry) Clone() VehicleCatalogEntry {
	out := e
	out.Aircon = clonePtr(e.Aircon)
	out.DailyRate = clonePtr(e.DailyRate)
	out.Locations = cloneSlice(e.Locations)
	out.Plates = cloneSlice(e.Plates)
	out.VehicleParameters = cloneSlice(e.VehicleParameters)

	if e.Damages != nil {
		out.Damages = make(map[string][]DamagePoint, len(e.Damages))
		for plate, points := range e.Damages {
			cloned := make([]DamagePoint, len(points))
			for i, p := range points {
				cloned[i] = p.clone()
			}
			out.Damages[plate] = cloned
		}
	}
	if e.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(e.Extra))
		for k, v := range e.Extra {
			out.Extra[k] = bytes.Clone(v)
		}
	}
	return out
}

func (p DamagePoint) clone() DamagePoint {
	p.X = clonePtr(p.X)
	p.Y = clonePtr(p.Y)
	p.PercentageX = clonePtr(p.PercentageX)
	p.PercentageY = clonePtr(p.PercentageY)
	return p
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneSlice keeps nil as nil so "locations": [] and null still round-trip apart.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
