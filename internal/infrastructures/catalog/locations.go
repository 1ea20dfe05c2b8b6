package catalog

import (
	"context"

	"github.com/Golden-Bit/myrent-SDK/internal/domain/models"
)

var weekDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Locations returns the demo branch table served by the local data source.
func (c *Catalog) Locations(_ context.Context) ([]models.Location, error) {
	return staticLocations(), nil
}

func staticLocations() []models.Location {
	termini := models.Location{
		LocationCode:    "XRJ",
		LocationName:    "ROMA TERMINI",
		LocationAddress: "Via Giovanni Giolitti",
		LocationNumber:  "16",
		LocationCity:    "ROMA",
		TelephoneNumber: "+393485330898",
		CellNumber:      "+393485330898",
		Email:           "termini@noleggiare.it",
		Latitude:        f64(41.899382),
		Longitude:       f64(12.50252),
		Openings:        openings(terminiClosesAt),
		Closing: []models.WeekOfDay{
			{DayOfTheWeek: 6, DayOfTheWeekName: "Saturday", StartTime: "18:01", EndTime: "23:59"},
			{DayOfTheWeek: 7, DayOfTheWeekName: "Sunday", StartTime: "13:01", EndTime: "23:59"},
		},
		ZipCode: "00185",
	}

	locs := []models.Location{
		termini,
		airport("FCO", "ROMA FIUMICINO AIRPORT", "Via dell'Aeroporto di Fiumicino", "ROMA", "+39 06 65951", "fco@noleggiare.it", 41.7999, 12.2462, "00054"),
		airport("MXP", "MILANO MALPENSA AIRPORT", "Terminal 1", "MILANO", "+39 02 232323", "mxp@noleggiare.it", 45.6301, 8.7231, "21010"),
		airport("FLR", "FIRENZE AIRPORT", "Via del Termine", "FIRENZE", "+39 055 123456", "flr@noleggiare.it", 43.806, 11.205, "50127"),
		airport("PMO100", "PALERMO AIRPORT", "Aeroporto Falcone e Borsellino", "PALERMO", "+39 091 702", "pmo@noleggiare.it", 38.175, 13.091, "90045"),
		airport("AHO100", "ALGHERO AIRPORT", "Reg. Nuraghe Biancu", "ALGHERO", "+39 079 935282", "aho@noleggiare.it", 40.632, 8.290, "07041"),
	}

	for i := range locs {
		locs[i].LocationType = 3
		locs[i].Country = "ITALIA"
	}
	return locs
}

func terminiClosesAt(day int) string {
	switch day {
	case 6:
		return "18:00"
	case 7:
		return "13:00"
	default:
		return "20:00"
	}
}

func airport(code, name, address, city, phone, email string, lat, lng float64, zip string) models.Location {
	return models.Location{
		LocationCode:    code,
		LocationName:    name,
		LocationAddress: address,
		LocationCity:    city,
		TelephoneNumber: phone,
		Email:           email,
		Latitude:        f64(lat),
		Longitude:       f64(lng),
		IsAirport:       true,
		Openings:        openings(func(int) string { return "20:00" }),
		ZipCode:         zip,
	}
}

func openings(closesAt func(day int) string) []models.WeekOfDay {
	out := make([]models.WeekOfDay, 0, len(weekDays))
	for i, name := range weekDays {
		out = append(out, models.WeekOfDay{
			DayOfTheWeek:     i + 1,
			DayOfTheWeekName: name,
			StartTime:        "08:00",
			EndTime:          closesAt(i + 1),
		})
	}
	return out
}

func f64(v float64) *float64 { return &v }
