// Package solar estimates sunrise and sunset for reports that arrive without
// a daily summary.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// zenith of the sun's centre at apparent sunrise, refraction included
const officialZenith = 90.833

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// SunTimes returns sunrise and sunset (UTC) for the calendar day of date at
// the given coordinates, using the NOAA solar position approximation.
// ok is false during polar day or polar night.
func SunTimes(date time.Time, latitude, longitude float64) (sunrise, sunset time.Time, ok bool) {
	day := date.UTC()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	noon := midnight.Add(12 * time.Hour)

	T := (julian.TimeToJD(noon) - 2451545.0) / 36525.0

	L0 := math.Mod(280.46646+T*(36000.76983+T*0.0003032), 360)
	M := 357.52911 + T*(35999.05029-T*0.0001537)
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	omega := 125.04 - 1934.136*T
	lambda := L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(omega))
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	eps := eps0 + 0.00256*math.Cos(degToRad(omega))
	decl := math.Asin(math.Sin(degToRad(eps)) * math.Sin(degToRad(lambda)))

	y := math.Pow(math.Tan(degToRad(eps)/2), 2)
	eqTime := 4 * radToDeg(y*math.Sin(2*degToRad(L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(2*degToRad(L0))-
		0.5*y*y*math.Sin(4*degToRad(L0))-
		1.25*e*e*math.Sin(2*degToRad(M)))

	lat := degToRad(latitude)
	cosH := math.Cos(degToRad(officialZenith))/(math.Cos(lat)*math.Cos(decl)) - math.Tan(lat)*math.Tan(decl)
	if cosH < -1 || cosH > 1 {
		return time.Time{}, time.Time{}, false
	}
	hourAngle := radToDeg(math.Acos(cosH))

	// minutes after UTC midnight
	solarNoon := 720 - 4*longitude - eqTime
	rise := solarNoon - 4*hourAngle
	set := solarNoon + 4*hourAngle

	sunrise = midnight.Add(time.Duration(rise * float64(time.Minute)))
	sunset = midnight.Add(time.Duration(set * float64(time.Minute)))
	return sunrise, sunset, true
}
