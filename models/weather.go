package models

// WeatherReport is the upstream One Call document for one location.
// Longitude and Latitude are overwritten with the coordinates the device asked
// for, so the station line echoes the request rather than the upstream grid point.
type WeatherReport struct {
	Longitude      float64        `json:"lon"`
	Latitude       float64        `json:"lat"`
	TimezoneOffset int            `json:"timezone_offset"` // seconds east of UTC
	Daily          []DailySummary `json:"daily"`
	Hourly         []HourlyRecord `json:"hourly"` // chronological, as delivered
}

// DailySummary carries the sun times of one day (unix seconds)
type DailySummary struct {
	Sunrise int64 `json:"sunrise"`
	Sunset  int64 `json:"sunset"`
}
