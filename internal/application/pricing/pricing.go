// Package pricing holds the quotation arithmetic. Every function is pure;
// money is rounded to two decimals only when the Calculated block is built.
package pricing

import (
	"crypto/md5"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/Golden-Bit/myrent-SDK/internal/domain/coerce"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
	"github.com/shopspring/decimal"
)

type Rules struct {
	OneWayFee     float64
	OutOfHoursFee float64
	OpeningHour   float64
	ClosingHour   float64

	YoungDriverPerDay  float64
	SeniorDriverPerDay float64
	YoungAgeBelow      int
	SeniorAgeFrom      int

	WebChannelPrefix   string
	WebChannelDiscount float64
	CouponDiscount     float64

	// A group is available when hash(code|pickup|date) % AvailabilityBuckets < AvailableBuckets.
	AvailabilityBuckets int
	AvailableBuckets    int
}

func DefaultRules() Rules {
	return Rules{
		OneWayFee:           60,
		OutOfHoursFee:       40,
		OpeningHour:         8,
		ClosingHour:         20,
		YoungDriverPerDay:   15,
		SeniorDriverPerDay:  10,
		YoungAgeBelow:       25,
		SeniorAgeFrom:       70,
		WebChannelPrefix:    "WEB",
		WebChannelDiscount:  0.03,
		CouponDiscount:      0.05,
		AvailabilityBuckets: 10,
		AvailableBuckets:    8,
	}
}

// SeasonalMultiplier is keyed off the pickup date only.
func SeasonalMultiplier(start time.Time) float64 {
	switch {
	case start.Month() == time.July || start.Month() == time.August:
		return 1.25
	case start.Month() == time.December && start.Day() >= 20:
		return 1.20
	case start.Month() == time.April:
		return 1.10
	default:
		return 1.0
	}
}

// DurationDays is ceil(hours/24) with a floor of one day.
func DurationDays(start, end time.Time) int {
	hours := end.Sub(start).Hours()
	days := int(math.Ceil(hours / 24))
	if days < 1 {
		return 1
	}
	return days
}

func (r Rules) OneWay(pickup, dropoff string) float64 {
	if pickup == dropoff {
		return 0
	}
	return r.OneWayFee
}

func (r Rules) OutOfHours(pickupAt time.Time) float64 {
	hour := float64(pickupAt.Hour()) + float64(pickupAt.Minute())/60
	if hour < r.OpeningHour || hour >= r.ClosingHour {
		return r.OutOfHoursFee
	}
	return 0
}

// AgeSurcharge adds the young and senior fees independently; explicit
// overrides can force both.
func (r Rules) AgeSurcharge(days int, age *int, youngOverride, seniorOverride *bool) float64 {
	young := isTrue(youngOverride) || (age != nil && *age < r.YoungAgeBelow)
	senior := isTrue(seniorOverride) || (age != nil && *age >= r.SeniorAgeFrom)

	var fee float64
	if young {
		fee += r.YoungDriverPerDay * float64(days)
	}
	if senior {
		fee += r.SeniorDriverPerDay * float64(days)
	}
	return fee
}

// Discount stacks the channel, coupon and absolute discounts and clamps the
// sum to [0, amount]. A non-numeric absolute discount counts as zero.
func (r Rules) Discount(amount float64, channel, coupon, discountWithoutVAT string) float64 {
	var disc float64
	if channel != "" && strings.HasPrefix(strings.ToUpper(channel), r.WebChannelPrefix) {
		disc += r.WebChannelDiscount * amount
	}
	if coupon != "" {
		disc += r.CouponDiscount * amount
	}
	if v, ok := coerce.Float(discountWithoutVAT); ok {
		disc += v
	}

	return math.Max(0, math.Min(amount, disc))
}

func ApplyVAT(preVAT, vatPct float64) float64 {
	return preVAT * (1 + vatPct/100)
}

func (r Rules) IsAvailable(code, pickup string, start time.Time) bool {
	if r.AvailabilityBuckets <= 0 {
		return true
	}

	seed := code + "|" + pickup + "|" + start.Format("2006-01-02")
	sum := md5.Sum([]byte(seed))
	n := new(big.Int).SetBytes(sum[:])
	bucket := new(big.Int).Mod(n, big.NewInt(int64(r.AvailabilityBuckets))).Int64()

	return bucket < int64(r.AvailableBuckets)
}

func (r Rules) Status(code, pickup string, start time.Time) models.AvailabilityStatus {
	if r.IsAvailable(code, pickup, start) {
		return models.StatusAvailable
	}
	return models.StatusUnavailable
}

// Breakdown prices one vehicle group for the request.
func (r Rules) Breakdown(dailyRate float64, req models.QuoteRequest, vatPct float64) models.Calculated {
	days := DurationDays(req.Start, req.End)

	baseDaily := dailyRate * SeasonalMultiplier(req.Start)
	base := baseDaily * float64(days)
	base += r.OneWay(req.PickupLocation, req.DropOffLocation)
	base += r.OutOfHours(req.Start)
	base += r.AgeSurcharge(days, req.Age, req.IsYoungDriverAge, req.IsSeniorDriverAge)

	discount := r.Discount(base, req.Channel, req.AgreementCoupon, req.DiscountValueWithoutVAT)
	preVAT := math.Max(0, base-discount)

	return Calculated(days, baseDaily, preVAT, vatPct)
}

// Calculated rounds the exposed amounts. Total is derived from the rounded
// pre-VAT amount so total == round(pre_vat*(1+vat/100), 2) holds exactly.
func Calculated(days int, baseDaily, preVAT, vatPct float64) models.Calculated {
	pre := decimal.NewFromFloat(preVAT).Round(2)
	mult := decimal.NewFromInt(1).Add(decimal.NewFromFloat(vatPct).Div(decimal.NewFromInt(100)))

	return models.Calculated{
		Days:      days,
		BaseDaily: Round2(baseDaily),
		PreVAT:    pre.InexactFloat64(),
		VATPct:    vatPct,
		Total:     pre.Mul(mult).Round(2).InexactFloat64(),
	}
}

// BestPrice is the cheapest total among offers with a breakdown, with its
// pre-VAT amount. Zero when nothing was priced.
func BestPrice(offers []models.VehicleOffer) models.TotalCharge {
	var best *models.Calculated
	for i := range offers {
		calc := offers[i].Reference.Calculated
		if calc == nil {
			continue
		}
		if best == nil || calc.Total < best.Total {
			best = calc
		}
	}

	if best == nil {
		return models.TotalCharge{}
	}
	return models.TotalCharge{
		EstimatedTotalAmount: Round2(best.Total),
		RateTotalAmount:      Round2(best.PreVAT),
	}
}

func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
