package mappers

import (
	"github.com/Golden-Bit/myrent-SDK/internal/domain/coerce"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
)

const (
	defaultLocationType = 3
	defaultCountry      = "ITALIA"
)

// NormalizeLocations accepts either a bare list or an object wrapping it
// under result/Result/data.
func NormalizeLocations(payload any) []models.Location {
	list := asList(payload)
	if list == nil {
		list = asList(firstTruthy(asMap(payload), "result", "Result", "data"))
	}

	out := make([]models.Location, 0, len(list))
	for _, item := range list {
		if d := asMap(item); d != nil {
			out = append(out, toDomainLocation(d))
		}
	}
	return out
}

func toDomainLocation(d map[string]any) models.Location {
	locType, ok := coerce.Int(d["locationType"])
	if !ok || locType == 0 {
		locType = defaultLocationType
	}

	country := firstString(d, "country")
	if country == "" {
		country = defaultCountry
	}

	var festivity []map[string]any
	for _, f := range asList(d["festivity"]) {
		if m := asMap(f); m != nil {
			festivity = append(festivity, m)
		}
	}

	return models.Location{
		LocationCode:                 coerce.String(d["locationCode"]),
		LocationName:                 coerce.String(d["locationName"]),
		LocationAddress:              coerce.String(d["locationAddress"]),
		LocationNumber:               coerce.String(d["locationNumber"]),
		LocationCity:                 coerce.String(d["locationCity"]),
		LocationType:                 locType,
		TelephoneNumber:              coerce.String(d["telephoneNumber"]),
		CellNumber:                   coerce.String(d["cellNumber"]),
		Email:                        coerce.String(d["email"]),
		Latitude:                     float64Ptr(d["latitude"]),
		Longitude:                    float64Ptr(d["longitude"]),
		IsAirport:                    flag(d["isAirport"]),
		IsRailway:                    flag(d["isRailway"]),
		IsAlwaysOpen:                 boolPtr(d["isAlwaysOpentrue"]),
		IsCarSharingEnabled:          flag(d["isCarSharingEnabled"]),
		AllowPickUpDropOffOutOfHours: flag(d["allowPickUpDropOffOutOfHours"]),
		HasKeyBox:                    flag(d["hasKeyBox"]),
		MorningStartTime:             coerce.String(d["morningStartTime"]),
		MorningStopTime:              coerce.String(d["morningStopTime"]),
		AfternoonStartTime:           coerce.String(d["afternoonStartTime"]),
		AfternoonStopTime:            coerce.String(d["afternoonStopTime"]),
		LocationInfoEN:               coerce.String(d["locationInfoEN"]),
		LocationInfoLocal:            coerce.String(d["locationInfoLocal"]),
		Openings:                     weekDays(d["openings"]),
		Closing:                      nilIfEmpty(weekDays(d["closing"])),
		Festivity:                    festivity,
		MinimumLeadTimeInHour:        intPtr(d["minimumLeadTimeInHour"]),
		Country:                      country,
		ZipCode:                      coerce.String(d["zipCode"]),
	}
}

// weekDays drops entries missing the day, its name or either time.
func weekDays(v any) []models.WeekOfDay {
	out := make([]models.WeekOfDay, 0)
	for _, item := range asList(v) {
		d := asMap(item)
		if d == nil {
			continue
		}
		day, ok := coerce.Int(d["dayOfTheWeek"])
		name := coerce.String(d["dayOfTheWeekName"])
		start := coerce.String(d["startTime"])
		end := coerce.String(d["endTime"])
		if !ok || name == "" || start == "" || end == "" {
			continue
		}
		out = append(out, models.WeekOfDay{
			DayOfTheWeek:     day,
			DayOfTheWeekName: name,
			StartTime:        start,
			EndTime:          end,
		})
	}
	return out
}

func nilIfEmpty(days []models.WeekOfDay) []models.WeekOfDay {
	if len(days) == 0 {
		return nil
	}
	return days
}
