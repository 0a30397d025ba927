package mapping

import (
	"math"

	"weather-proxy/models"
)

const precipitationWindow = "1h"

// Precipitation returns the one-hour rain amount when the record has a rain
// object, else the one-hour snow amount, else 0. The two are never summed.
func Precipitation(h models.HourlyRecord) float64 {
	switch {
	case h.Rain != nil:
		return h.Rain[precipitationWindow]
	case h.Snow != nil:
		return h.Snow[precipitationWindow]
	}
	return 0
}

// HasPrecipitation reports whether Precipitation is non-zero
func HasPrecipitation(h models.HourlyRecord) bool {
	return Precipitation(h) != 0
}

// PrecipitationProbability is a binary stand-in: 100 when any precipitation
// is forecast for the hour, 0 otherwise.
func PrecipitationProbability(h models.HourlyRecord) int {
	if HasPrecipitation(h) {
		return 100
	}
	return 0
}

// WindBearing turns the meteorological "from" direction into the "towards"
// bearing the device expects, rounded half to even. The result is always in
// [0, 360).
func WindBearing(h models.HourlyRecord) int {
	bearing := math.Mod(h.WindDeg-180, 360)
	if bearing < 0 {
		bearing += 360
	}
	rounded := int(math.RoundToEven(bearing))
	if rounded == 360 {
		return 0
	}
	return rounded
}

// MetersPerSecond converts km/h to m/s
func MetersPerSecond(kmh float64) float64 {
	return kmh * 1000 / 3600
}

// Percent expresses a 0..1 fraction as a percentage
func Percent(fraction float64) float64 {
	return fraction * 100
}

// SolarProxy stands in for radiation: the UV index scaled by 100
func SolarProxy(h models.HourlyRecord) float64 {
	return h.UVI * 100
}
