package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/JackSam678/Stress/internal/partition"
)

// Result captures execution summary.
type Result struct {
	RunID    string
	Total    int64
	Failures int64
	Duration time.Duration
}

// Runner fans a fixed request total out across a fixed set of workers. Each
// worker owns one partition entry and executes it sequentially; the only
// shared mutable state is the outcome collector.
type Runner struct {
	opt Options
	id  string
}

func New(opt Options) *Runner {
	opt.normalize()
	return &Runner{opt: opt, id: ulid.Make().String()}
}

// ID returns the unique identifier assigned to this run.
func (r *Runner) ID() string {
	return r.id
}

// Run starts one worker per partition entry and blocks until every worker has
// drained its assignment. This join is the only synchronization barrier; the
// collector snapshot is consistent once Run returns.
//
// Context cancellation is the interrupt path only. A normal run proceeds
// until the workload is exhausted; per-request timeouts are enforced by the
// HTTP client, not the runner.
func (r *Runner) Run(ctx context.Context) Result {
	start := time.Now()
	if ctx == nil {
		ctx = context.Background()
	}

	assignments := partition.Split(r.opt.TotalRequests, r.opt.Concurrency)
	limiter := r.opt.LimiterFactory(r.opt.RatePerSecond)

	var total int64
	var failures int64

	var wg sync.WaitGroup
	wg.Add(len(assignments))
	for _, count := range assignments {
		go func(count int) {
			defer wg.Done()
			for i := 0; i < count; i++ {
				if ctx.Err() != nil {
					return
				}
				if limiter != nil {
					// Advisory pacing; a cancelled wait falls through to the
					// interrupt check above.
					_ = limiter.Wait(ctx)
				}
				if r.opt.Requester == nil {
					continue
				}
				out := r.opt.Requester.Do(ctx)
				atomic.AddInt64(&total, 1)
				if out.Failed() {
					atomic.AddInt64(&failures, 1)
				}
				if r.opt.Collector != nil {
					r.opt.Collector.Record(out)
				}
			}
		}(count)
	}
	wg.Wait()

	return Result{
		RunID:    r.id,
		Total:    atomic.LoadInt64(&total),
		Failures: atomic.LoadInt64(&failures),
		Duration: time.Since(start),
	}
}
