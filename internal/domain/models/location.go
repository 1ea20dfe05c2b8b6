package models

type WeekOfDay struct {
	DayOfTheWeek     int    `json:"dayOfTheWeek"`
	DayOfTheWeekName string `json:"dayOfTheWeekName"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
}

type Location struct {
	LocationCode                 string           `json:"locationCode"`
	LocationName                 string           `json:"locationName"`
	LocationAddress              string           `json:"locationAddress,omitempty"`
	LocationNumber               string           `json:"locationNumber,omitempty"`
	LocationCity                 string           `json:"locationCity,omitempty"`
	LocationType                 int              `json:"locationType"`
	TelephoneNumber              string           `json:"telephoneNumber,omitempty"`
	CellNumber                   string           `json:"cellNumber,omitempty"`
	Email                        string           `json:"email,omitempty"`
	Latitude                     *float64         `json:"latitude,omitempty"`
	Longitude                    *float64         `json:"longitude,omitempty"`
	IsAirport                    bool             `json:"isAirport"`
	IsRailway                    bool             `json:"isRailway"`
	IsAlwaysOpen                 *bool            `json:"isAlwaysOpentrue,omitempty"`
	IsCarSharingEnabled          bool             `json:"isCarSharingEnabled"`
	AllowPickUpDropOffOutOfHours bool             `json:"allowPickUpDropOffOutOfHours"`
	HasKeyBox                    bool             `json:"hasKeyBox"`
	MorningStartTime             string           `json:"morningStartTime,omitempty"`
	MorningStopTime              string           `json:"morningStopTime,omitempty"`
	AfternoonStartTime           string           `json:"afternoonStartTime,omitempty"`
	AfternoonStopTime            string           `json:"afternoonStopTime,omitempty"`
	LocationInfoEN               string           `json:"locationInfoEN,omitempty"`
	LocationInfoLocal            string           `json:"locationInfoLocal,omitempty"`
	Openings                     []WeekOfDay      `json:"openings"`
	Closing                      []WeekOfDay      `json:"closing"`
	Festivity                    []map[string]any `json:"festivity,omitempty"`
	MinimumLeadTimeInHour        *int             `json:"minimumLeadTimeInHour,omitempty"`
	Country                      string           `json:"country,omitempty"`
	ZipCode                      string           `json:"zipCode,omitempty"`
}
