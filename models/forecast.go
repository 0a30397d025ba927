package models

import (
	"time"
)

// HourlyRecord represents a single hour of the upstream forecast
type HourlyRecord struct {
	Timestamp  int64        `json:"dt"`         // unix seconds
	Temp       float64      `json:"temp"`       // in Celsius
	FeelsLike  float64      `json:"feels_like"` // in Celsius
	WindSpeed  float64      `json:"wind_speed"` // in km/h
	WindDeg    float64      `json:"wind_deg"`   // meteorological, direction the wind blows from
	WindGust   float64      `json:"wind_gust"`  // in km/h
	Clouds     float64      `json:"clouds"`     // fraction 0..1
	Pressure   float64      `json:"pressure"`   // in hPa
	Humidity   float64      `json:"humidity"`   // fraction 0..1
	UVI        float64      `json:"uvi"`
	Conditions []Condition  `json:"weather,omitempty"`
	Rain       Accumulation `json:"rain,omitempty"`
	Snow       Accumulation `json:"snow,omitempty"`
}

// Condition is the upstream categorical weather descriptor
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main,omitempty"`
	Description string `json:"description,omitempty"`
}

// Accumulation maps an accumulation window ("1h") to millimetres.
// A nil map means the upstream omitted the object entirely.
type Accumulation map[string]float64

// Time returns the record timestamp in the given location
func (h HourlyRecord) Time(loc *time.Location) time.Time {
	return time.Unix(h.Timestamp, 0).In(loc)
}

// ConditionCode returns the first condition id and whether one was present
func (h HourlyRecord) ConditionCode() (int, bool) {
	if len(h.Conditions) == 0 {
		return 0, false
	}
	return h.Conditions[0].ID, true
}
