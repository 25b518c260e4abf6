package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// ProgressFunc is invoked after every recorded outcome with the number of
// completed requests so far and the configured target total.
type ProgressFunc func(completed, total int64)

// Collector is the single synchronized owner of run-wide statistics. Workers
// submit outcomes through Record; nothing else mutates the aggregate state.
type Collector struct {
	mu           sync.Mutex
	hist         *hdrhistogram.Histogram
	statusCounts map[int]int64
	errorCounts  map[string]int64
	sumLatency   time.Duration
	minLatency   time.Duration
	maxLatency   time.Duration
	successes    int64
	failures     int64
	completed    int64
	target       int64
	onProgress   ProgressFunc
	start        time.Time
}

// Stats is an immutable snapshot of aggregated metrics, safe to read without
// further locking.
type Stats struct {
	Total     int64 `json:"total"`
	Successes int64 `json:"successes"`
	Failures  int64 `json:"failures"`

	StatusCounts map[int]int64    `json:"status_counts,omitempty"`
	Errors       map[string]int64 `json:"errors,omitempty"`

	MinLatency  time.Duration `json:"-"`
	MaxLatency  time.Duration `json:"-"`
	MeanLatency time.Duration `json:"-"`
	P50Latency  time.Duration `json:"-"`
	P90Latency  time.Duration `json:"-"`
	P99Latency  time.Duration `json:"-"`
	Duration    time.Duration `json:"-"`

	RequestsPerSec float64 `json:"requests_per_sec"`

	// JSON-friendly millisecond fields.
	MinLatencyMs  float64 `json:"min_latency_ms"`
	MaxLatencyMs  float64 `json:"max_latency_ms"`
	MeanLatencyMs float64 `json:"mean_latency_ms"`
	P50LatencyMs  float64 `json:"p50_latency_ms"`
	P90LatencyMs  float64 `json:"p90_latency_ms"`
	P99LatencyMs  float64 `json:"p99_latency_ms"`
	DurationMs    float64 `json:"duration_ms"`
}

// NewCollector creates an empty collector for a run targeting total requests.
func NewCollector(target int64) *Collector {
	// Track success latencies from 1µs up to 60s with 3 significant figures.
	h := hdrhistogram.New(1, 60_000_000, 3)
	return &Collector{
		hist:         h,
		statusCounts: make(map[int]int64),
		errorCounts:  make(map[string]int64),
		target:       target,
		start:        time.Now(),
	}
}

// OnProgress installs the progress hook. Must be set before workers start
// recording; the hook runs outside the collector lock.
func (c *Collector) OnProgress(fn ProgressFunc) {
	c.onProgress = fn
}

// Start marks the actual run start for accurate elapsed-time calculations.
func (c *Collector) Start() {
	c.mu.Lock()
	c.start = time.Now()
	c.mu.Unlock()
}

// Elapsed returns the wall-clock time since Start.
func (c *Collector) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.start)
}

// Target returns the configured total request count for the run.
func (c *Collector) Target() int64 {
	return c.target
}

// Record applies one outcome to the aggregate state. It is safe to call from
// any number of workers; each call is applied atomically and increments the
// completion count exactly once regardless of outcome kind.
func (c *Collector) Record(out Outcome) {
	c.mu.Lock()

	if out.Failed() {
		c.failures++
		c.errorCounts[out.ErrorKind]++
	} else {
		c.successes++
		c.statusCounts[out.StatusCode]++
		c.sumLatency += out.Latency

		if out.Latency > 0 {
			us := out.Latency.Microseconds()
			if us < c.hist.LowestTrackableValue() {
				us = c.hist.LowestTrackableValue()
			}
			if us > c.hist.HighestTrackableValue() {
				us = c.hist.HighestTrackableValue()
			}
			_ = c.hist.RecordValue(us)
		}
		if c.minLatency == 0 || out.Latency < c.minLatency {
			c.minLatency = out.Latency
		}
		if out.Latency > c.maxLatency {
			c.maxLatency = out.Latency
		}
	}
	c.completed++
	completed := c.completed
	hook := c.onProgress

	c.mu.Unlock()

	if hook != nil {
		hook(completed, c.target)
	}
}

// Completed returns the number of outcomes recorded so far.
func (c *Collector) Completed() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

// Stats computes a snapshot of the aggregate state. Final statistics should
// be read only after all workers have joined; mid-run calls are safe and are
// used by progress reporters and the dashboard.
func (c *Collector) Stats(elapsed time.Duration) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{
		Total:      c.completed,
		Successes:  c.successes,
		Failures:   c.failures,
		MinLatency: c.minLatency,
		MaxLatency: c.maxLatency,
	}

	if len(c.statusCounts) > 0 {
		stats.StatusCounts = make(map[int]int64, len(c.statusCounts))
		for code, count := range c.statusCounts {
			stats.StatusCounts[code] = count
		}
	}
	if len(c.errorCounts) > 0 {
		stats.Errors = make(map[string]int64, len(c.errorCounts))
		for kind, count := range c.errorCounts {
			stats.Errors[kind] = count
		}
	}

	// Mean latency covers successful outcomes only; failures carry no
	// meaningful latency measurement.
	if c.successes > 0 {
		stats.MeanLatency = time.Duration(int64(c.sumLatency) / c.successes)
	}

	if c.hist.TotalCount() > 0 {
		stats.P50Latency = time.Duration(c.hist.ValueAtQuantile(50)) * time.Microsecond
		stats.P90Latency = time.Duration(c.hist.ValueAtQuantile(90)) * time.Microsecond
		stats.P99Latency = time.Duration(c.hist.ValueAtQuantile(99)) * time.Microsecond
	}

	stats.Duration = elapsed
	if elapsed > 0 {
		stats.RequestsPerSec = float64(c.completed) / elapsed.Seconds()
	}

	stats.MinLatencyMs = float64(stats.MinLatency) / float64(time.Millisecond)
	stats.MaxLatencyMs = float64(stats.MaxLatency) / float64(time.Millisecond)
	stats.MeanLatencyMs = float64(stats.MeanLatency) / float64(time.Millisecond)
	stats.P50LatencyMs = float64(stats.P50Latency) / float64(time.Millisecond)
	stats.P90LatencyMs = float64(stats.P90Latency) / float64(time.Millisecond)
	stats.P99LatencyMs = float64(stats.P99Latency) / float64(time.Millisecond)
	stats.DurationMs = float64(elapsed) / float64(time.Millisecond)

	return stats
}
