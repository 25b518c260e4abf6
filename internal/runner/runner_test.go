package runner_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/JackSam678/Stress/internal/metrics"
	"github.com/JackSam678/Stress/internal/runner"
)

// fakeRequester simulates performing a request with fixed latency.
type fakeRequester struct {
	latency     time.Duration
	failEvery   int64 // if >0, every Nth call yields a failure outcome
	calls       int64
	inFlight    int64
	maxInFlight int64
}

func (f *fakeRequester) Do(ctx context.Context) metrics.Outcome {
	current := atomic.AddInt64(&f.inFlight, 1)
	for {
		max := atomic.LoadInt64(&f.maxInFlight)
		if current <= max || atomic.CompareAndSwapInt64(&f.maxInFlight, max, current) {
			break
		}
	}
	defer atomic.AddInt64(&f.inFlight, -1)

	n := atomic.AddInt64(&f.calls, 1)
	if f.latency > 0 {
		select {
		case <-time.After(f.latency):
		case <-ctx.Done():
			return metrics.Failure("timeout")
		}
	}
	if f.failEvery > 0 && n%f.failEvery == 0 {
		return metrics.Failure("timeout")
	}
	return metrics.Success(200, time.Millisecond)
}

func TestRunnerExecutesExactTotal(t *testing.T) {
	req := &fakeRequester{latency: time.Millisecond}
	collector := metrics.NewCollector(25)

	r := runner.New(runner.Options{
		Concurrency:   4,
		TotalRequests: 25,
		Requester:     req,
		Collector:     collector,
	})
	res := r.Run(context.Background())

	if res.Total != 25 {
		t.Fatalf("expected total 25, got %d", res.Total)
	}
	if got := atomic.LoadInt64(&req.calls); got != 25 {
		t.Fatalf("expected requester called 25 times, got %d", got)
	}
	// Join barrier: every outcome is recorded before Run returns.
	if got := collector.Completed(); got != 25 {
		t.Fatalf("expected 25 recorded outcomes, got %d", got)
	}
}

func TestRunnerZeroTotalDoesNoWork(t *testing.T) {
	req := &fakeRequester{}
	collector := metrics.NewCollector(0)

	r := runner.New(runner.Options{
		Concurrency:   8,
		TotalRequests: 0,
		Requester:     req,
		Collector:     collector,
	})
	res := r.Run(context.Background())

	if res.Total != 0 {
		t.Errorf("expected zero total, got %d", res.Total)
	}
	if got := atomic.LoadInt64(&req.calls); got != 0 {
		t.Errorf("expected no requester calls, got %d", got)
	}
	stats := collector.Stats(time.Second)
	if stats.Total != 0 || len(stats.StatusCounts) != 0 || len(stats.Errors) != 0 {
		t.Errorf("expected empty snapshot, got %+v", stats)
	}
}

func TestRunnerBoundsInFlightRequests(t *testing.T) {
	req := &fakeRequester{latency: 2 * time.Millisecond}
	collector := metrics.NewCollector(200)

	r := runner.New(runner.Options{
		Concurrency:   5,
		TotalRequests: 200,
		Requester:     req,
		Collector:     collector,
	})
	r.Run(context.Background())

	if max := atomic.LoadInt64(&req.maxInFlight); max > 5 {
		t.Errorf("observed %d concurrent requests, want at most 5", max)
	}
}

func TestRunnerFailuresDoNotAbortWorkers(t *testing.T) {
	req := &fakeRequester{failEvery: 4}
	collector := metrics.NewCollector(20)

	r := runner.New(runner.Options{
		Concurrency:   2,
		TotalRequests: 20,
		Requester:     req,
		Collector:     collector,
	})
	res := r.Run(context.Background())

	if res.Total != 20 {
		t.Fatalf("expected all 20 requests executed, got %d", res.Total)
	}
	if res.Failures != 5 {
		t.Errorf("expected 5 failures, got %d", res.Failures)
	}
	stats := collector.Stats(time.Second)
	if got := stats.Errors["timeout"]; got != 5 {
		t.Errorf("expected 5 recorded timeouts, got %d", got)
	}
	if stats.Successes != 15 {
		t.Errorf("expected 15 successes, got %d", stats.Successes)
	}
}

func TestRunnerNormalizesDegenerateOptions(t *testing.T) {
	req := &fakeRequester{}
	collector := metrics.NewCollector(3)

	r := runner.New(runner.Options{
		Concurrency:   0, // coerced to 1
		TotalRequests: 3,
		RatePerSecond: -5, // coerced to unpaced
		Requester:     req,
		Collector:     collector,
	})
	res := r.Run(context.Background())

	if res.Total != 3 {
		t.Fatalf("expected 3 requests, got %d", res.Total)
	}
	if max := atomic.LoadInt64(&req.maxInFlight); max != 1 {
		t.Errorf("expected a single sequential worker, got %d in flight", max)
	}
}

func TestRunnerRunIDsAreUnique(t *testing.T) {
	a := runner.New(runner.Options{})
	b := runner.New(runner.Options{})

	if a.ID() == "" {
		t.Fatal("expected non-empty run ID")
	}
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct run IDs, both %s", a.ID())
	}

	res := a.Run(context.Background())
	if res.RunID != a.ID() {
		t.Errorf("result run ID %s does not match runner ID %s", res.RunID, a.ID())
	}
}

func TestRateLimiterSpacesRequests(t *testing.T) {
	req := &fakeRequester{}
	collector := metrics.NewCollector(5)

	r := runner.New(runner.Options{
		Concurrency:   10,
		TotalRequests: 5,
		RatePerSecond: 50,
		Requester:     req,
		Collector:     collector,
		LimiterFactory: func(rps int) *rate.Limiter {
			return rate.NewLimiter(rate.Limit(rps), 1)
		},
	})

	start := time.Now()
	res := r.Run(context.Background())
	elapsed := time.Since(start)

	if res.Total != 5 {
		t.Fatalf("expected 5 requests, got %d", res.Total)
	}
	// Four inter-arrival gaps at 50 rps is 80ms; allow scheduling slack.
	if elapsed < 60*time.Millisecond {
		t.Errorf("requests not paced: completed in %s", elapsed)
	}
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	req := &fakeRequester{latency: 5 * time.Millisecond}
	collector := metrics.NewCollector(1000)

	r := runner.New(runner.Options{
		Concurrency:   2,
		TotalRequests: 1000,
		Requester:     req,
		Collector:     collector,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	res := r.Run(ctx)
	if res.Total >= 1000 {
		t.Errorf("expected interrupted run to stop early, executed %d", res.Total)
	}
	// Outcomes recorded before the interrupt are preserved.
	if collector.Completed() != res.Total {
		t.Errorf("collector count %d does not match executed %d", collector.Completed(), res.Total)
	}
}
