package dto

// QuotationRequest is the body of POST /quotations. Dates carry no zone.
type QuotationRequest struct {
	DropOffLocation         string `json:"dropOffLocation"`
	EndDate                 string `json:"endDate"`
	PickupLocation          string `json:"pickupLocation"`
	StartDate               string `json:"startDate"`
	Age                     int    `json:"age"`
	Channel                 string `json:"channel"`
	ShowPics                *bool  `json:"showPics,omitempty"`
	ShowOptionalImage       *bool  `json:"showOptionalImage,omitempty"`
	ShowVehicleParameter    *bool  `json:"showVehicleParameter,omitempty"`
	ShowVehicleExtraImage   *bool  `json:"showVehicleExtraImage,omitempty"`
	AgreementCoupon         string `json:"agreementCoupon,omitempty"`
	DiscountValueWithoutVAT string `json:"discountValueWithoutVat,omitempty"`
	MacroDescription        string `json:"macroDescription,omitempty"`
	ShowBookingDiscount     *bool  `json:"showBookingDiscount,omitempty"`
	// the upstream expects the lowercase y
	IsYoungDriverAge  *bool `json:"isyoungDriverAge,omitempty"`
	IsSeniorDriverAge *bool `json:"isSeniorDriverAge,omitempty"`
}
