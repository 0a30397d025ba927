package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-proxy/models"
)

const (
	// DefaultOneCallURL is the upstream One Call endpoint
	DefaultOneCallURL = "https://api.openweathermap.org/data/2.5/onecall"
	// DefaultLang is the display locale requested from upstream
	DefaultLang = "cz"
	// DefaultTimeout bounds a single upstream request
	DefaultTimeout = 5 * time.Second
)

// OpenWeatherMapProvider fetches live reports from the One Call API
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	lang       string
	httpClient *http.Client
}

// ProviderOption customises an OpenWeatherMapProvider
type ProviderOption func(*OpenWeatherMapProvider)

// WithBaseURL points the provider at a different endpoint
func WithBaseURL(u string) ProviderOption {
	return func(p *OpenWeatherMapProvider) { p.baseURL = u }
}

// WithLang sets the upstream display locale
func WithLang(lang string) ProviderOption {
	return func(p *OpenWeatherMapProvider) { p.lang = lang }
}

// WithTimeout bounds each upstream request
func WithTimeout(d time.Duration) ProviderOption {
	return func(p *OpenWeatherMapProvider) { p.httpClient.Timeout = d }
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider.
// An empty apiKey is accepted; upstream rejects it at request time.
func NewOpenWeatherMapProvider(apiKey string, opts ...ProviderOption) *OpenWeatherMapProvider {
	p := &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: DefaultOneCallURL,
		lang:    DefaultLang,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// FetchReport performs one One Call request for the coordinate
func (p *OpenWeatherMapProvider) FetchReport(ctx context.Context, coord Coordinate) (models.WeatherReport, error) {
	params := url.Values{}
	params.Add("appid", p.apiKey)
	params.Add("lang", p.lang)
	params.Add("units", "metric")
	params.Add("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Add("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return models.WeatherReport{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.WeatherReport{}, unavailable(0, fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherReport{}, unavailable(resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return models.WeatherReport{}, unavailable(resp.StatusCode, errors.New(truncate(string(body), 256)))
	}

	report, err := DecodeReport(body)
	if err != nil {
		return models.WeatherReport{}, unavailable(resp.StatusCode, err)
	}
	return report, nil
}

// DecodeReport parses a One Call JSON document
func DecodeReport(data []byte) (models.WeatherReport, error) {
	var report models.WeatherReport
	if err := json.Unmarshal(data, &report); err != nil {
		return models.WeatherReport{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return report, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ ReportSource = (*OpenWeatherMapProvider)(nil)
