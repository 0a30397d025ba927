package datasource

import (
	"context"
	"fmt"

	"weather-proxy/models"

	"golang.org/x/time/rate"
)

// RateLimitedSource wraps a ReportSource with rate limiting so a chatty device
// cannot exhaust the upstream quota
type RateLimitedSource struct {
	source  ReportSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedSource creates a new rate limited report source
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedSource(source ReportSource, rps float64, burst int) *RateLimitedSource {
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchReport fetches a report, respecting rate limits
func (r *RateLimitedSource) FetchReport(ctx context.Context, coord Coordinate) (models.WeatherReport, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			// the limiter refuses up front when the next token lies past the deadline
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return models.WeatherReport{}, unavailable(0, fmt.Errorf("rate limit wait canceled: %w", err))
	}

	return r.source.FetchReport(ctx, coord)
}

// Name returns the source name
func (r *RateLimitedSource) Name() string {
	return r.name
}

var _ ReportSource = (*RateLimitedSource)(nil)
