package format

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"weather-proxy/mapping"
	"weather-proxy/models"
)

const xmlHeader = `<?xml version="1.0"?>`

type featureCollection struct {
	XMLName    xml.Name  `xml:"metdata_feature_collection"`
	P          string    `xml:"p,attr"`
	ValidUntil string    `xml:"valid_until,attr"`
	Data       []metdata `xml:"metdata"`
}

// metdata field order is part of the wire format
type metdata struct {
	Timepoint   string `xml:"timepoint"`
	Temperature string `xml:"TT"`
	WindSpeed   string `xml:"FF"` // m/s
	WindBearing string `xml:"DD"`
	Rain        string `xml:"RR1H"`
	Pressure    string `xml:"PP0"`
	Humidity    string `xml:"RH"`
	FeelsLike   string `xml:"HI"`
	Radiation   string `xml:"RAD"`
	Icon        string `xml:"WW"`
	WindGust    string `xml:"FFX"` // m/s
	LowClouds   string `xml:"LC"`
	MidClouds   string `xml:"MC"`
	HighClouds  string `xml:"HC"`
	UVIndex     string `xml:"RAD4C"`
}

// XML renders the metdata feature collection feed
type XML struct {
	loc *time.Location
}

// NewXML creates an XML formatter; nil loc means time.Local
func NewXML(loc *time.Location) *XML {
	return &XML{loc: location(loc)}
}

// ContentType returns the MIME type of the XML feed
func (x *XML) ContentType() string {
	return "text/xml"
}

// Format renders one <metdata> element per hour
func (x *XML) Format(report models.WeatherReport, altitude float64) ([]byte, error) {
	fc := featureCollection{
		P:          "m",
		ValidUntil: LicenseExpiry.Format("2006-01-02"),
		Data:       make([]metdata, 0, len(report.Hourly)),
	}
	for _, h := range report.Hourly {
		fc.Data = append(fc.Data, x.metdata(h))
	}

	body, err := xml.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode xml: %w", err)
	}

	out := make([]byte, 0, len(xmlHeader)+len(body)+1)
	out = append(out, xmlHeader...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

func (x *XML) metdata(h models.HourlyRecord) metdata {
	return metdata{
		Timepoint:   h.Time(x.loc).Format("2006-01-02T15:04:05"),
		Temperature: fmt.Sprintf("%.1f", h.Temp),
		WindSpeed:   fmt.Sprintf("%.1f", mapping.MetersPerSecond(h.WindSpeed)),
		WindBearing: strconv.Itoa(mapping.WindBearing(h)),
		Rain:        fmt.Sprintf("%5.1f", mapping.Precipitation(h)),
		Pressure:    fmt.Sprintf("%.0f", h.Pressure),
		Humidity:    fmt.Sprintf("%.0f", mapping.Percent(h.Humidity)),
		FeelsLike:   fmt.Sprintf("%.1f", h.FeelsLike),
		Radiation:   fmt.Sprintf("%4.0f", mapping.SolarProxy(h)),
		Icon:        strconv.Itoa(XMLIconPlaceholder),
		WindGust:    fmt.Sprintf("%.1f", mapping.MetersPerSecond(h.WindGust)),
		LowClouds:   "0",
		MidClouds:   fmt.Sprintf("%.0f", mapping.Percent(h.Clouds)),
		HighClouds:  "0",
		UVIndex:     fmt.Sprintf("%.0f", h.UVI),
	}
}

var _ Formatter = (*XML)(nil)
