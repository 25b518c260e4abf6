// Package metrics provides thread-safe aggregation of per-request outcomes.
//
// The central [Collector] type is the single owner of run-wide statistics.
// Workers submit an [Outcome] per attempted request through [Collector.Record],
// which is safe to call concurrently; every call is applied atomically and
// bumps the completion count exactly once. A [Stats] snapshot is an immutable
// copy, intended to be read after all workers have joined.
//
//	collector := metrics.NewCollector(1000)
//	collector.Start()
//
//	// From any worker goroutine:
//	collector.Record(metrics.Success(200, latency))
//	collector.Record(metrics.Failure("timeout"))
//
//	stats := collector.Stats(elapsed)
//
// Derived metrics are computed at snapshot time, not stored redundantly:
// throughput is completed requests over elapsed wall-clock seconds (zero when
// elapsed is not positive), and mean latency is the success-latency sum over
// the success count (zero when there are no successes). Latency percentiles
// come from an HdrHistogram of success latencies.
//
// An optional progress hook installed with [Collector.OnProgress] fires after
// every recorded outcome with the current completed count and the target
// total, letting a reporter render updates without the collector depending on
// any output mechanism.
package metrics
