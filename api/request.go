package api

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"weather-proxy/datasource"
)

// ErrMalformedRequest is wrapped by every query parsing failure
var ErrMalformedRequest = errors.New("malformed request")

// forecastRequest is the parsed query of GET /forecast/
type forecastRequest struct {
	Coordinate datasource.Coordinate
	Format     int
}

// parseForecastRequest reads coord=<lon>,<lat> (required), asl=<metres> and
// format=<n>. A format value that is not an integer selects the default feed.
func parseForecastRequest(q url.Values) (forecastRequest, error) {
	var req forecastRequest

	coord := strings.TrimSpace(q.Get("coord"))
	if coord == "" {
		return req, fmt.Errorf("%w: missing coord", ErrMalformedRequest)
	}

	parts := strings.Split(coord, ",")
	if len(parts) != 2 {
		return req, fmt.Errorf("%w: coord must be <lon>,<lat>, got %q", ErrMalformedRequest, coord)
	}

	lon, err := parseFloat(parts[0])
	if err != nil || lon < -180 || lon > 180 {
		return req, fmt.Errorf("%w: invalid longitude %q", ErrMalformedRequest, parts[0])
	}
	lat, err := parseFloat(parts[1])
	if err != nil || lat < -90 || lat > 90 {
		return req, fmt.Errorf("%w: invalid latitude %q", ErrMalformedRequest, parts[1])
	}
	req.Coordinate.Longitude = lon
	req.Coordinate.Latitude = lat

	if asl := strings.TrimSpace(q.Get("asl")); asl != "" {
		alt, err := parseFloat(asl)
		if err != nil {
			return req, fmt.Errorf("%w: invalid asl %q", ErrMalformedRequest, asl)
		}
		req.Coordinate.Altitude = alt
	}

	if f, err := strconv.Atoi(strings.TrimSpace(q.Get("format"))); err == nil {
		req.Format = f
	}

	return req, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}
