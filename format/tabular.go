package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"weather-proxy/mapping"
	"weather-proxy/models"
	"weather-proxy/solar"
)

const tabularLegend = "id;name;longitude;latitude;height (m.asl.);country;timezone;utc-timedifference;sunrise;sunset;\n" +
	"local date;weekday;local time;temperature(C);feeledTemperature(C);windspeed(km/h);winddirection(degr);wind gust(km/h);" +
	"low clouds(%);medium clouds(%);high clouds(%);precipitation(mm);probability of Precip(%);snowFraction;" +
	"sea level pressure(hPa);relative humidity(%);CAPE;picto-code;radiation (W/m2);\n"

// Tabular renders the semicolon-delimited feed. Local times use the host's
// zone, not the report's timezone offset.
type Tabular struct {
	loc *time.Location
}

// NewTabular creates a tabular formatter; nil loc means time.Local
func NewTabular(loc *time.Location) *Tabular {
	return &Tabular{loc: location(loc)}
}

// ContentType returns the MIME type of the tabular feed
func (t *Tabular) ContentType() string {
	return "text/plain"
}

// Format renders the header, the station line and one line per hour
func (t *Tabular) Format(report models.WeatherReport, altitude float64) ([]byte, error) {
	var b strings.Builder

	b.WriteString("<mb_metadata>\n")
	b.WriteString(tabularLegend)
	b.WriteString("</mb_metadata><valid_until>" + LicenseExpiry.Format("2006-01-02") + "</valid_until>\n")

	b.WriteString("<station>\n")
	b.WriteString(t.stationLine(report, altitude))
	for _, h := range report.Hourly {
		b.WriteString(t.dataLine(h))
	}
	b.WriteString("</station>\n")

	return []byte(b.String()), nil
}

func (t *Tabular) stationLine(report models.WeatherReport, altitude float64) string {
	sunrise, sunset := t.sunTimes(report)
	return fmt.Sprintf(";%s;%s;%s;%s;;%s;UTC%+.2f;%s;%s;\n",
		StationName,
		strconv.FormatFloat(report.Longitude, 'f', -1, 64),
		strconv.FormatFloat(report.Latitude, 'f', -1, 64),
		strconv.FormatFloat(altitude, 'f', -1, 64),
		StationTimezone,
		float64(report.TimezoneOffset)/3600,
		sunrise,
		sunset,
	)
}

// sunTimes uses the first daily summary, or computes the times from the
// coordinates when upstream sent none.
func (t *Tabular) sunTimes(report models.WeatherReport) (string, string) {
	if len(report.Daily) > 0 {
		d := report.Daily[0]
		return time.Unix(d.Sunrise, 0).In(t.loc).Format("15:04"), time.Unix(d.Sunset, 0).In(t.loc).Format("15:04")
	}

	ref := time.Now()
	if len(report.Hourly) > 0 {
		ref = time.Unix(report.Hourly[0].Timestamp, 0)
	}
	rise, set, ok := solar.SunTimes(ref, report.Latitude, report.Longitude)
	if !ok {
		return "", ""
	}
	return rise.In(t.loc).Format("15:04"), set.In(t.loc).Format("15:04")
}

func (t *Tabular) dataLine(h models.HourlyRecord) string {
	precip := mapping.Precipitation(h)

	var b strings.Builder
	b.WriteString(h.Time(t.loc).Format("02.01.2006;Mon;15;"))
	fmt.Fprintf(&b, "%5.1f;", h.Temp)
	fmt.Fprintf(&b, "%5.1f;", h.FeelsLike)
	fmt.Fprintf(&b, "%3.0f;", h.WindSpeed)
	fmt.Fprintf(&b, "%3.0f;", h.WindDeg) // raw "from" direction
	fmt.Fprintf(&b, "%3.0f;", h.WindGust)
	fmt.Fprintf(&b, "%3.0f;", 0.0) // low clouds
	fmt.Fprintf(&b, "%3.0f;", mapping.Percent(h.Clouds))
	fmt.Fprintf(&b, "%3.0f;", 0.0) // high clouds
	fmt.Fprintf(&b, "%5.1f;", precip)
	fmt.Fprintf(&b, "%3d;", mapping.PrecipitationProbability(h))
	fmt.Fprintf(&b, "%3.1f;", 0.0) // snow fraction
	fmt.Fprintf(&b, "%4.0f;", h.Pressure)
	fmt.Fprintf(&b, "%3.0f;", mapping.Percent(h.Humidity))
	fmt.Fprintf(&b, "%6d;", 0) // CAPE
	fmt.Fprintf(&b, "%d;", mapping.IconForHour(h))
	fmt.Fprintf(&b, "%4.0f;", mapping.SolarProxy(h))
	b.WriteString("\n")
	return b.String()
}

var _ Formatter = (*Tabular)(nil)
