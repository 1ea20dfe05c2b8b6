package mappers

import (
	"fmt"
	"strings"

	"github.com/Golden-Bit/myrent-SDK/internal/application/pricing"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/coerce"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
)

const defaultCurrency = "EUR"

// ResolveTotalCharge splits the upstream charge fields into (pre-VAT, VAT-inclusive).
// The three amounts carry no fixed meaning upstream, so the first rule that fits wins:
//
//	a. taxable and rate both positive with rate >= taxable: taxable is pre-VAT,
//	   the total is a positive estimate or else rate
//	b. taxable and a positive estimate: taken as they are
//	c. estimate and rate both positive: the larger is the total
//	d. rate, then estimate, as the total; pre-VAT derived from the VAT multiplier
//	e. zero for both
func ResolveTotalCharge(tc map[string]any, vatPct float64) (preVAT, total float64) {
	est, hasEst := coerce.Float(tc["EstimatedTotalAmount"])
	rate, hasRate := coerce.Float(tc["RateTotalAmount"])
	taxable, hasTaxable := coerce.Float(tc["TaxableAmount"])

	switch {
	case hasTaxable && hasRate && taxable > 0 && rate > 0 && rate >= taxable:
		if hasEst && est > 0 {
			return taxable, est
		}
		return taxable, rate
	case hasTaxable && hasEst && est > 0:
		return taxable, est
	case hasEst && hasRate && est > 0 && rate > 0:
		if est >= rate {
			return rate, est
		}
		return est, rate
	case hasRate && rate > 0:
		return pricing.Round2(rate / vatMultiplier(vatPct)), rate
	case hasEst && est > 0:
		return pricing.Round2(est / vatMultiplier(vatPct)), est
	default:
		return 0, 0
	}
}

func vatMultiplier(vatPct float64) float64 {
	return 1 + vatPct/100
}

// ResolveTransmission reduces the upstream transmission value to "M" or "A".
// Strings match exactly, then by the MAN/AUT substrings; objects try their
// description, then code, then a numeric id where 1 is manual and 2 automatic.
// Anything else degrades to its string form. Empty means unknown.
func ResolveTransmission(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return transmissionFromString(x)
	case map[string]any:
		if desc, ok := nonEmptyString(firstTruthy(x, "description", "Description", "name", "Name")); ok {
			return transmissionFromString(desc)
		}
		if code, ok := nonEmptyString(firstTruthy(x, "code", "Code")); ok {
			return transmissionFromString(code)
		}
		if id, ok := coerce.Int(firstTruthy(x, "id", "ID")); ok {
			return transmissionFromID(id, coerce.String(id))
		}
		return ""
	case bool:
		return coerce.String(x)
	case []any:
		return strings.TrimSpace(fmt.Sprint(x))
	}

	if id, ok := coerce.Int(v); ok {
		return transmissionFromID(id, coerce.String(v))
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func transmissionFromString(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	upper := strings.ToUpper(s)
	switch upper {
	case "M", "MAN", "MANUALE", "MANUAL":
		return "M"
	case "A", "AUT", "AUTO", "AUTOMATICO", "AUTOMATIC":
		return "A"
	}

	switch {
	case strings.Contains(upper, "MAN"):
		return "M"
	case strings.Contains(upper, "AUT"):
		return "A"
	}
	return s
}

func transmissionFromID(id int, fallback string) string {
	switch id {
	case 1:
		return "M"
	case 2:
		return "A"
	default:
		return fallback
	}
}

// ResolveMakeModel reads VehMakeModel as an object or a list (first element),
// then falls back to groupWebDescription. Empty when none is set.
func ResolveMakeModel(veh map[string]any) string {
	switch mm := veh["VehMakeModel"].(type) {
	case map[string]any:
		if name := firstString(mm, "Name", "name"); name != "" {
			return name
		}
	case []any:
		if len(mm) > 0 {
			if first := asMap(mm[0]); first != nil {
				if name := firstString(first, "Name", "name"); name != "" {
					return name
				}
			}
		}
	}

	return firstString(veh, "groupWebDescription")
}

// ResolveVehicleID prefers the group picture id, then the vehicle id, then the code.
func ResolveVehicleID(groupPic, veh map[string]any, code string) models.VehicleID {
	id, ok := groupPic["id"]
	if !ok || id == nil {
		id = veh["id"]
	}

	if s := coerce.String(id); s != "" {
		return models.VehicleID(s)
	}
	return models.VehicleID(code)
}

func ResolveCode(veh, groupPic map[string]any) string {
	if code := firstString(veh, "Code"); code != "" {
		return code
	}
	return firstString(groupPic, "internationalCode")
}

// ResolveNationalCode falls back to VendorCarType, which some deployments use
// for the national group letter.
func ResolveNationalCode(veh, groupPic map[string]any) string {
	if code := firstString(veh, "nationalCode"); code != "" {
		return code
	}
	if code := firstString(groupPic, "nationalCode"); code != "" {
		return code
	}
	return firstString(veh, "VendorCarType")
}

// ResolveOptional reconciles a Charge/Equipment pair. The description comes
// from Charge first, then Equipment's description or code.
func ResolveOptional(opt map[string]any, showImage bool) models.OptionalAddOn {
	ch := asMap(opt["Charge"])
	eq := asMap(opt["Equipment"])

	amount, _ := coerce.Float(ch["Amount"])

	currency := firstString(ch, "CurrencyCode")
	if currency == "" {
		currency = defaultCurrency
	}

	desc := firstString(ch, "Description")
	if desc == "" {
		desc = firstString(eq, "Description", "Code")
	}
	if desc == "" {
		desc = "OPTIONAL"
	}

	eqDesc := firstString(eq, "Description")
	if eqDesc == "" {
		eqDesc = desc
	}

	equipType := firstString(eq, "EquipType", "Code")
	if equipType == "" {
		equipType = "GEN"
	}

	quantity, _ := coerce.Int(eq["Quantity"])

	out := models.OptionalAddOn{
		Charge: models.Charge{
			Amount:                pricing.Round2(amount),
			CurrencyCode:          currency,
			Description:           desc,
			IncludedInEstTotalInd: flag(ch["IncludedInEstTotalInd"]),
			IncludedInRate:        flag(ch["IncludedInRate"]),
			TaxInclusive:          flag(ch["TaxInclusive"]),
		},
		Equipment: models.Equipment{
			Description:    eqDesc,
			EquipType:      equipType,
			Quantity:       quantity,
			IsMultipliable: flag(eq["isMultipliable"]),
		},
	}
	if showImage {
		out.Equipment.OptionalImage = firstString(eq, "optionalImage")
	}
	return out
}

func flag(v any) bool {
	b, _ := coerce.Bool(v)
	return b
}
