package mappers

import (
	"time"

	"github.com/Golden-Bit/myrent-SDK/internal/application/pricing"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/coerce"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
)

type Options struct {
	VATPct float64
}

// NormalizeQuotation converts an upstream quotation payload into the wrapper
// schema. It never fails: an unrecognized payload yields an empty result that
// echoes the request.
func NormalizeQuotation(payload any, req models.QuoteRequest, opts Options) models.QuoteResult {
	env := DetectEnvelope(payload)

	pickup := coerce.String(env.Header("PickUpLocation"))
	if pickup == "" {
		pickup = req.PickupLocation
	}
	dropoff := coerce.String(env.Header("ReturnLocation"))
	if dropoff == "" {
		dropoff = req.DropOffLocation
	}
	pickupAt := headerTime(env.Header("PickUpDateTime"), req.Start)
	returnAt := headerTime(env.Header("ReturnDateTime"), req.End)

	days := rentalDays(req, env)

	offers := make([]models.VehicleOffer, 0, len(env.Vehicles))
	for _, vs := range env.Vehicles {
		offers = append(offers, convertVehicleStatus(vs, req, days, pickup, dropoff, opts))
	}

	optionals := make([]models.OptionalAddOn, 0, len(env.Optionals))
	for _, opt := range env.Optionals {
		optionals = append(optionals, ResolveOptional(opt, req.ShowOptionalImage))
	}

	return models.QuoteResult{
		Total:          len(offers),
		PickUpLocation: pickup,
		ReturnLocation: dropoff,
		PickUpDateTime: pickupAt,
		ReturnDateTime: returnAt,
		Vehicles:       offers,
		Optionals:      optionals,
		TotalCharge:    pricing.BestPrice(offers),
	}
}

func headerTime(v any, fallback time.Time) string {
	if s := coerce.String(v); s != "" {
		return s
	}
	if fallback.IsZero() {
		return ""
	}
	return coerce.FormatWrapper(fallback)
}

// rentalDays prefers the request window and falls back to the payload's.
func rentalDays(req models.QuoteRequest, env Envelope) int {
	start, end := req.Start, req.End
	if start.IsZero() {
		start, _ = coerce.Time(env.Header("PickUpDateTime"))
	}
	if end.IsZero() {
		end, _ = coerce.Time(env.Header("ReturnDateTime"))
	}
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return 1
	}
	return pricing.DurationDays(start, end)
}

func convertVehicleStatus(vs map[string]any, req models.QuoteRequest, days int, pickup, dropoff string, opts Options) models.VehicleOffer {
	veh := asMap(vs["Vehicle"])
	if veh == nil {
		veh = map[string]any{}
	}

	groupPic := asMap(veh["groupPic"])
	if groupPic == nil {
		groupPic = asMap(vs["groupPic"])
	}
	if groupPic == nil {
		groupPic = map[string]any{}
	}

	status := coerce.String(firstTruthy(vs, "Status"))
	if status == "" {
		status = string(models.StatusAvailable)
	}

	tc := asMap(vs["TotalCharge"])
	if tc == nil {
		tc = asMap(vs["total_charge"])
	}
	preVAT, total := ResolveTotalCharge(tc, opts.VATPct)

	calc := models.Calculated{
		Days:      days,
		BaseDaily: pricing.Round2(preVAT / float64(days)),
		PreVAT:    pricing.Round2(preVAT),
		VATPct:    opts.VATPct,
		Total:     pricing.Round2(total),
	}

	offer := models.VehicleOffer{
		Status: models.AvailabilityStatus(status),
		Reference: models.Reference{
			Calculated: &calc,
			Upstream:   asMap(vs["Reference"]),
		},
		Vehicle: bookingVehicle(veh, groupPic, pickup, dropoff),
		TotalCharge: &models.TotalCharge{
			EstimatedTotalAmount: calc.Total,
			RateTotalAmount:      calc.PreVAT,
		},
	}

	if req.ShowVehicleParameter {
		params := asList(vs["vehicleParameter"])
		if params == nil {
			params = asList(veh["vehicleParameter"])
		}
		offer.VehicleParameter = vehicleParameters(params)
	}

	if req.ShowPics {
		if id, ok := coerce.Int(groupPic["id"]); ok {
			offer.GroupPic = &models.GroupPic{ID: id}
		}
	}

	if req.ShowVehicleExtraImage {
		offer.VehicleExtraImage = []string{}
	}

	for _, opt := range mapsOf(vs["optionals"]) {
		offer.Optionals = append(offer.Optionals, ResolveOptional(opt, req.ShowOptionalImage))
	}

	return offer
}

func bookingVehicle(veh, groupPic map[string]any, pickup, dropoff string) models.BookingVehicle {
	code := ResolveCode(veh, groupPic)

	name := ResolveMakeModel(veh)
	if name == "" {
		name = code
	}
	makeModel := []models.VehMakeModel{}
	if name != "" {
		makeModel = append(makeModel, models.VehMakeModel{Name: name})
	}

	codeContext := firstString(veh, "CodeContext")
	if codeContext == "" {
		codeContext = "ACRISS"
	}

	aircon := veh["airCondition"]
	if aircon == nil {
		aircon = veh["aircon"]
	}

	seats, _ := coerce.Int(veh["seats"])
	doors, _ := coerce.Int(veh["doors"])
	km := 0

	return models.BookingVehicle{
		ID:           ResolveVehicleID(groupPic, veh, code),
		Code:         code,
		CodeContext:  codeContext,
		NationalCode: ResolveNationalCode(veh, groupPic),
		VehMakeModel: makeModel,
		Model:        name,
		MacroGroup:   firstString(veh, "VendorCarMacroGroup", "macroClass"),
		CarType:      firstString(veh, "VendorCarType"),
		Seats:        seats,
		Doors:        doors,
		Transmission: ResolveTransmission(firstTruthy(veh, "transmission", "Transmission")),
		Fuel:         firstString(veh, "fuel", "fuelType"),
		Aircon:       boolPtr(aircon),
		ImageURL:     firstString(veh, "vehicleGroupPic", "imageUrl"),
		Km:           &km,
		Locations:    unique(pickup, dropoff),
		Plates:       []string{},
	}
}

// vehicleParameters keeps entries that carry both a name and a description.
// A missing position falls back to the 1-based index.
func vehicleParameters(raw []any) []models.VehicleParameter {
	out := make([]models.VehicleParameter, 0, len(raw))
	for i, item := range raw {
		p := asMap(item)
		if p == nil {
			continue
		}
		name := firstString(p, "name", "Name", "name :")
		desc := firstString(p, "description", "Description", "description :")
		if name == "" || desc == "" {
			continue
		}
		pos, ok := coerce.Int(firstTruthy(p, "position", "Position", "position :"))
		if !ok || pos == 0 {
			pos = i + 1
		}
		out = append(out, models.VehicleParameter{
			Name:        name,
			Description: desc,
			Position:    pos,
			FileURL:     firstString(p, "fileUrl", "fileUrl :"),
		})
	}
	return out
}
