package runner

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/JackSam678/Stress/internal/metrics"
)

// Requester executes one HTTP request and reports its terminal outcome.
// Implementations must return exactly one outcome per call and never panic on
// transport failures; failures are data, not faults.
type Requester interface {
	Do(ctx context.Context) metrics.Outcome
}

// Options configure the Runner.
type Options struct {
	Concurrency   int                // number of worker goroutines
	TotalRequests int                // total requests, split evenly across workers
	RatePerSecond int                // advisory pacing across all workers (0 means unpaced)
	Requester     Requester          // request executor (required)
	Collector     *metrics.Collector // outcome sink (required)

	LimiterFactory func(rps int) *rate.Limiter // optional injection for tests
}

func (o *Options) normalize() {
	if o.Concurrency <= 0 {
		o.Concurrency = 1
	}
	if o.TotalRequests < 0 {
		o.TotalRequests = 0
	}
	if o.RatePerSecond < 0 {
		o.RatePerSecond = 0
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps int) *rate.Limiter {
			if rps <= 0 {
				return rate.NewLimiter(rate.Inf, 0)
			}
			// Burst equal to rps to smooth pacing under concurrency.
			return rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}
