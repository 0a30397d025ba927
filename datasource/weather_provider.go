package datasource

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"weather-proxy/models"
)

// ReportSource is an interface for anything that can produce a weather report
// for a coordinate: the live upstream, the fixture file, or a wrapper of either.
type ReportSource interface {
	// FetchReport returns the forecast for a location
	FetchReport(ctx context.Context, coord Coordinate) (models.WeatherReport, error)

	// Name returns the source's name
	Name() string
}

// Coordinate is the location a device asked for
type Coordinate struct {
	Longitude float64
	Latitude  float64
	Altitude  float64 // metres above sea level, informational only
}

func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', -1, 64)
}

// ErrUpstreamUnavailable matches every *UpstreamError via errors.Is
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// UpstreamError reports a failed upstream fetch. StatusCode is 0 when no
// HTTP response was received.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream unavailable (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream unavailable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstreamUnavailable }

// Timeout reports whether the fetch failed because a deadline expired
func (e *UpstreamError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// unavailable wraps err unless it already is an UpstreamError
func unavailable(status int, err error) error {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return err
	}
	return &UpstreamError{StatusCode: status, Err: err}
}
