package datasource

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"weather-proxy/models"
)

// stubSource counts calls and optionally blocks until released
type stubSource struct {
	calls   atomic.Int32
	running atomic.Int32
	peak    atomic.Int32
	delay   time.Duration
	release chan struct{}
	report  models.WeatherReport
	err     error
	mu      sync.Mutex
	coords  []Coordinate
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchReport(ctx context.Context, coord Coordinate) (models.WeatherReport, error) {
	s.calls.Add(1)
	n := s.running.Add(1)
	defer s.running.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}

	s.mu.Lock()
	s.coords = append(s.coords, coord)
	s.mu.Unlock()

	if s.release != nil {
		<-s.release
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return models.WeatherReport{}, ctx.Err()
		}
	}
	return s.report, s.err
}
