// Package mapping translates upstream forecast values into what the device
// expects: picto-code icon ids and derived per-hour quantities.
package mapping

import "weather-proxy/models"

// DefaultIcon is the clear-sky icon returned for codes missing from the table.
const DefaultIcon = 1

// conditionIcons maps upstream weather condition codes to device icon ids.
// https://openweathermap.org/weather-conditions
var conditionIcons = map[int]int{
	// Thunderstorm
	200: 18, // with light rain
	201: 18, // with rain
	202: 18, // with heavy rain
	210: 18, // light
	211: 18,
	212: 19, // heavy
	221: 18, // ragged
	230: 18, // with light drizzle
	231: 18, // with drizzle
	232: 18, // with heavy drizzle

	// Drizzle
	300: 13,
	301: 13,
	302: 13,
	310: 13,
	311: 13,
	312: 13,
	313: 16, // shower rain and drizzle
	314: 17, // heavy shower rain and drizzle
	321: 16, // shower drizzle

	// Rain
	500: 10, // light
	501: 11, // moderate
	502: 12, // heavy
	503: 12, // very heavy
	504: 12, // extreme
	511: 15, // freezing
	520: 16, // light shower
	521: 16, // shower
	522: 17, // heavy shower
	531: 17, // ragged shower

	// Snow
	600: 20, // light
	601: 21,
	602: 22, // heavy
	611: 26, // sleet
	612: 28, // light shower sleet
	613: 29, // shower sleet
	615: 25, // light rain and snow
	616: 27, // rain and snow
	620: 23, // light shower
	621: 24, // shower
	622: 24, // heavy shower

	// Atmosphere
	701: 6, // mist
	711: 6, // smoke
	721: 6, // haze
	731: 7, // sand/dust whirls
	741: 7, // fog
	751: 7, // sand
	761: 7, // dust
	762: 7, // volcanic ash
	771: 7, // squalls
	781: 7, // tornado

	// Clear and clouds
	800: 1,
	801: 2, // few clouds: 11-25%
	802: 3, // scattered clouds: 25-50%
	803: 4, // broken clouds: 51-84%
	804: 5, // overcast clouds: 85-100%
}

// IconForCondition returns the icon id for an upstream condition code.
// Unknown codes fall back to DefaultIcon; this never fails.
func IconForCondition(code int) int {
	if icon, ok := conditionIcons[code]; ok {
		return icon
	}
	return DefaultIcon
}

// IconForHour maps the first condition of an hourly record.
func IconForHour(h models.HourlyRecord) int {
	code, ok := h.ConditionCode()
	if !ok {
		return DefaultIcon
	}
	return IconForCondition(code)
}
