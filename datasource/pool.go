package datasource

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/semaphore"

	"weather-proxy/models"
)

// PooledSource runs fetches on a bounded worker pool. Each request gets its
// own task and result channel; nothing is shared between requests.
type PooledSource struct {
	source ReportSource
	pool   *ants.Pool
	// slots admits a fetch to the pool; waiting for one honours the caller's context
	slots   *semaphore.Weighted
	pending atomic.Int64
	limit   int64
}

type fetchResult struct {
	report models.WeatherReport
	err    error
}

// NewPooledSource allows at most workers concurrent fetches and queues up to
// maxWaiting more; beyond that fetches fail fast.
func NewPooledSource(source ReportSource, workers, maxWaiting int) (*PooledSource, error) {
	pool, err := ants.NewPool(workers, ants.WithExpiryDuration(time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	return &PooledSource{
		source: source,
		pool:   pool,
		slots:  semaphore.NewWeighted(int64(workers)),
		limit:  int64(workers + maxWaiting),
	}, nil
}

// Name returns the name of the wrapped source
func (p *PooledSource) Name() string {
	return p.source.Name()
}

// FetchReport waits for a free worker, runs the fetch on it and waits for the
// result. ctx bounds both waits.
func (p *PooledSource) FetchReport(ctx context.Context, coord Coordinate) (models.WeatherReport, error) {
	if p.pending.Add(1) > p.limit {
		p.pending.Add(-1)
		return models.WeatherReport{}, unavailable(0, fmt.Errorf("worker pool: %w", ants.ErrPoolOverload))
	}
	if err := p.slots.Acquire(ctx, 1); err != nil {
		p.pending.Add(-1)
		return models.WeatherReport{}, unavailable(0, fmt.Errorf("waiting for worker: %w", err))
	}

	done := make(chan fetchResult, 1)
	err := p.pool.Submit(func() {
		defer p.release()
		report, err := p.source.FetchReport(ctx, coord)
		done <- fetchResult{report: report, err: err}
	})
	if err != nil {
		p.release()
		return models.WeatherReport{}, unavailable(0, fmt.Errorf("worker pool: %w", err))
	}

	select {
	case res := <-done:
		return res.report, res.err
	case <-ctx.Done():
		return models.WeatherReport{}, unavailable(0, ctx.Err())
	}
}

func (p *PooledSource) release() {
	p.slots.Release(1)
	p.pending.Add(-1)
}

// Running returns the number of fetches in flight
func (p *PooledSource) Running() int {
	return p.pool.Running()
}

// Close releases the pool, waiting up to timeout for running fetches
func (p *PooledSource) Close(timeout time.Duration) error {
	return p.pool.ReleaseTimeout(timeout)
}

var _ ReportSource = (*PooledSource)(nil)
