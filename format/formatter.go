// Package format renders a weather report in the two device-native formats:
// the semicolon-delimited tabular feed and the XML feed.
package format

import (
	"time"

	"weather-proxy/models"
)

// Placeholders the device expects but that are not derived from the report.
const (
	// StationName is printed in the tabular station line for every location
	StationName = "Hostivice"
	// StationTimezone is the zone label in the tabular station line
	StationTimezone = "CEST"
	// XMLIconPlaceholder is emitted in every XML <WW> element instead of the
	// mapped icon id
	XMLIconPlaceholder = 2
)

// LicenseExpiry is the fixed validity date advertised in both formats
var LicenseExpiry = time.Date(2049, time.December, 31, 0, 0, 0, 0, time.UTC)

// Formatter renders a full report as a response body
type Formatter interface {
	Format(report models.WeatherReport, altitude float64) ([]byte, error)
	ContentType() string
}

// For returns the formatter selected by the device's format flag:
// 1 selects the tabular feed, anything else the XML feed.
func For(flag int, loc *time.Location) Formatter {
	if flag == 1 {
		return NewTabular(loc)
	}
	return NewXML(loc)
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
