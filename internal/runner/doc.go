// Package runner provides the core load execution engine.
//
// The runner splits a fixed request total into per-worker assignments (see
// the partition package), starts one goroutine per assignment, and blocks
// until every worker has executed its share. Requests within a worker are
// strictly sequential; concurrency exists only across workers, so total
// in-flight requests are bounded by the configured worker count.
//
// # Basic Usage
//
//	opts := runner.Options{
//		Concurrency:   50,
//		TotalRequests: 1000,
//		Requester:     myRequester,
//		Collector:     collector,
//	}
//	r := runner.New(opts)
//	result := r.Run(ctx)
//
// # Requester Interface
//
// The [Requester] interface defines what a worker executes:
//
//	type Requester interface {
//		Do(ctx context.Context) metrics.Outcome
//	}
//
// Every call must yield exactly one outcome. A failure outcome never aborts
// the worker's remaining requests; each request is independent and final (no
// retries).
//
// # Pacing
//
// Options.RatePerSecond installs a shared golang.org/x/time rate limiter that
// spaces request starts across all workers. Pacing is advisory: it spreads
// load over time but has no effect on correctness or on the final counts.
package runner
