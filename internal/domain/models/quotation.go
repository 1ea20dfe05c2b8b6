package models

import "time"

type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "Available"
	StatusUnavailable AvailabilityStatus = "Unavailable"
)

// QuoteRequest is a validated quotation request. Start and End keep the
// wall clock the caller sent.
type QuoteRequest struct {
	PickupLocation          string
	DropOffLocation         string
	Start                   time.Time
	End                     time.Time
	Age                     *int
	Channel                 string
	AgreementCoupon         string
	DiscountValueWithoutVAT string
	MacroDescription        string
	ShowPics                bool
	ShowOptionalImage       bool
	ShowVehicleParameter    bool
	ShowVehicleExtraImage   bool
	ShowBookingDiscount     bool
	IsYoungDriverAge        *bool
	IsSeniorDriverAge       *bool
}

type Calculated struct {
	Days      int     `json:"days"`
	BaseDaily float64 `json:"base_daily"`
	PreVAT    float64 `json:"pre_vat"`
	VATPct    float64 `json:"vat_pct"`
	Total     float64 `json:"total"`
}

type Reference struct {
	Calculated *Calculated    `json:"calculated,omitempty"`
	Upstream   map[string]any `json:"myrent,omitempty"`
}

type TotalCharge struct {
	EstimatedTotalAmount float64 `json:"EstimatedTotalAmount"`
	RateTotalAmount      float64 `json:"RateTotalAmount"`
}

type GroupPic struct {
	ID  int    `json:"id"`
	URL string `json:"url,omitempty"`
}

type VehicleOffer struct {
	Status            AvailabilityStatus `json:"Status"`
	Reference         Reference          `json:"Reference"`
	Vehicle           BookingVehicle     `json:"Vehicle"`
	VehicleParameter  []VehicleParameter `json:"vehicleParameter"`
	VehicleExtraImage []string           `json:"vehicleExtraImage"`
	GroupPic          *GroupPic          `json:"groupPic"`
	Optionals         []OptionalAddOn    `json:"optionals,omitempty"`
	TotalCharge       *TotalCharge       `json:"total_charge,omitempty"`
}

type QuoteResult struct {
	Total          int             `json:"total"`
	PickUpLocation string          `json:"PickUpLocation"`
	ReturnLocation string          `json:"ReturnLocation"`
	PickUpDateTime string          `json:"PickUpDateTime"`
	ReturnDateTime string          `json:"ReturnDateTime"`
	Vehicles       []VehicleOffer  `json:"Vehicles"`
	Optionals      []OptionalAddOn `json:"optionals"`
	TotalCharge    TotalCharge     `json:"TotalCharge"`
}

type Charge struct {
	Amount                float64 `json:"Amount"`
	CurrencyCode          string  `json:"CurrencyCode"`
	Description           string  `json:"Description"`
	IncludedInEstTotalInd bool    `json:"IncludedInEstTotalInd"`
	IncludedInRate        bool    `json:"IncludedInRate"`
	TaxInclusive          bool    `json:"TaxInclusive"`
}

type Equipment struct {
	Description    string `json:"Description"`
	EquipType      string `json:"EquipType"`
	Quantity       int    `json:"Quantity"`
	IsMultipliable bool   `json:"isMultipliable"`
	OptionalImage  string `json:"optionalImage,omitempty"`
}

type OptionalAddOn struct {
	Charge    Charge    `json:"Charge"`
	Equipment Equipment `json:"Equipment"`
}
