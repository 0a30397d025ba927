package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneCallBody = `{
  "lat": 50.08, "lon": 14.25, "timezone_offset": 7200,
  "daily": [{"sunrise": 1718938260, "sunset": 1718997240}],
  "hourly": [
    {"dt": 1718960400, "temp": 21.4, "feels_like": 21.0, "wind_speed": 12.6, "wind_deg": 350,
     "wind_gust": 20.5, "clouds": 0.85, "pressure": 1015, "humidity": 0.64, "uvi": 5.2,
     "weather": [{"id": 803}], "rain": {"1h": 0.4}},
    {"dt": 1718964000, "temp": 22.9, "feels_like": 22.5, "wind_speed": 9, "wind_deg": 180,
     "wind_gust": 14.4, "clouds": 0.2, "pressure": 1014, "humidity": 0.55, "uvi": 6.1,
     "weather": [{"id": 800}], "snow": {"1h": 1.5}}
  ]
}`

func TestOpenWeatherMapFetchReport(t *testing.T) {
	var gotQuery map[string]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"appid": q.Get("appid"),
			"lang":  q.Get("lang"),
			"units": q.Get("units"),
			"lon":   q.Get("lon"),
			"lat":   q.Get("lat"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(oneCallBody))
	}))
	defer upstream.Close()

	p := NewOpenWeatherMapProvider("key123", WithBaseURL(upstream.URL))
	report, err := p.FetchReport(context.Background(), Coordinate{Longitude: 14.25, Latitude: 50.08})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"appid": "key123",
		"lang":  "cz",
		"units": "metric",
		"lon":   "14.25",
		"lat":   "50.08",
	}, gotQuery)

	assert.Equal(t, 7200, report.TimezoneOffset)
	require.Len(t, report.Daily, 1)
	assert.Equal(t, int64(1718938260), report.Daily[0].Sunrise)
	require.Len(t, report.Hourly, 2)

	first := report.Hourly[0]
	assert.Equal(t, int64(1718960400), first.Timestamp)
	assert.Equal(t, 0.85, first.Clouds)
	assert.Equal(t, 350.0, first.WindDeg)
	assert.Equal(t, 0.4, first.Rain["1h"])
	assert.Nil(t, first.Snow)
	code, ok := first.ConditionCode()
	assert.True(t, ok)
	assert.Equal(t, 803, code)

	assert.Nil(t, report.Hourly[1].Rain)
	assert.Equal(t, 1.5, report.Hourly[1].Snow["1h"])
}

func TestOpenWeatherMapNonOK(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer upstream.Close()

	p := NewOpenWeatherMapProvider("", WithBaseURL(upstream.URL))
	_, err := p.FetchReport(context.Background(), Coordinate{Longitude: 14.25, Latitude: 50.08})
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusUnauthorized, ue.StatusCode)
	assert.False(t, ue.Timeout())
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestOpenWeatherMapBadBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer upstream.Close()

	p := NewOpenWeatherMapProvider("key", WithBaseURL(upstream.URL))
	_, err := p.FetchReport(context.Background(), Coordinate{})
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
}

func TestOpenWeatherMapTimeout(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer upstream.Close()
	defer close(release)

	p := NewOpenWeatherMapProvider("key", WithBaseURL(upstream.URL), WithTimeout(50*time.Millisecond))
	_, err := p.FetchReport(context.Background(), Coordinate{})
	require.Error(t, err)

	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.True(t, ue.Timeout(), "expected a timeout, got %v", err)
	assert.Equal(t, 0, ue.StatusCode)
}

func TestOpenWeatherMapUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	p := NewOpenWeatherMapProvider("key", WithBaseURL(url))
	_, err := p.FetchReport(context.Background(), Coordinate{})
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
}

func TestCoordinateString(t *testing.T) {
	assert.Equal(t, "14.25,50.08", Coordinate{Longitude: 14.25, Latitude: 50.08}.String())
	assert.Equal(t, "-3.7,40.4", Coordinate{Longitude: -3.7, Latitude: 40.4}.String())
}
