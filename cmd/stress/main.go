package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/JackSam678/Stress/internal/config"
	"github.com/JackSam678/Stress/internal/dashboard"
	"github.com/JackSam678/Stress/internal/httpclient"
	"github.com/JackSam678/Stress/internal/metrics"
	"github.com/JackSam678/Stress/internal/output"
	"github.com/JackSam678/Stress/internal/runner"
	"github.com/JackSam678/Stress/internal/target"
	"github.com/JackSam678/Stress/internal/tracing"
)

const tracingShutdownTimeout = 5 * time.Second

type httpRequester struct {
	client  *http.Client
	target  string
	tracing *tracing.Provider
}

type stderrFailureLogger struct {
	mu sync.Mutex
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}

	if strings.TrimSpace(cfg.TargetURL) != "" {
		normalized, err := target.Normalize(cfg.TargetURL)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		cfg.TargetURL = normalized
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	traceProvider, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
		defer shutdownCancel()
		_ = traceProvider.Shutdown(shutdownCtx)
	}()

	client := httpclient.NewClient(cfg.Timeout)
	collector := metrics.NewCollector(int64(cfg.Total))

	requester := &httpRequester{
		client:  client,
		target:  cfg.TargetURL,
		tracing: traceProvider,
	}

	var wrapped runner.Requester = requester
	if cfg.LogErrors {
		wrapped = &loggingRequester{next: wrapped, logger: &stderrFailureLogger{}}
	}

	r := runner.New(runner.Options{
		Concurrency:   cfg.Concurrency,
		TotalRequests: cfg.Total,
		RatePerSecond: cfg.Rate,
		Requester:     wrapped,
		Collector:     collector,
	})

	var dash *dashboard.Dashboard
	var progress *output.ProgressPrinter
	if cfg.Dashboard {
		dash, err = dashboard.New(collector, dashboard.TestConfig{
			TargetURL:   cfg.TargetURL,
			Concurrency: cfg.Concurrency,
			Total:       cfg.Total,
			Rate:        cfg.Rate,
			Timeout:     cfg.Timeout,
		}, cancel)
		if err != nil {
			return err
		}
		dash.Start()
	} else if !cfg.JSONOutput && cfg.ProgressEvery > 0 {
		progress = output.NewProgressPrinter(os.Stdout, cfg.ProgressEvery)
		collector.OnProgress(progress.Update)
	}

	// Mark the actual start time in the collector so progress reporters use
	// the correct elapsed time once the run begins.
	collector.Start()
	result := r.Run(ctx)
	stats := collector.Stats(result.Duration)

	if dash != nil {
		dash.Stop()
	}
	if progress != nil {
		progress.Finish()
	}

	if cfg.JSONOutput {
		return output.PrintJSONReport(os.Stdout, result.RunID, stats)
	}
	output.PrintReport(os.Stdout, result.RunID, stats)
	return nil
}

// Do executes one GET against the target and reports its outcome. Transport
// failures are classified and recorded as data; they never abort the worker.
func (r *httpRequester) Do(ctx context.Context) metrics.Outcome {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := tracing.StartRequestSpan(ctx, r.tracing.Tracer(), r.target)

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.target, nil)
	if err != nil {
		tracing.EndSpan(span, err)
		return metrics.Failure(httpclient.Classify(err))
	}
	if r.tracing.ShouldPropagate() {
		tracing.InjectHTTPHeaders(ctx, req.Header)
	}

	resp, err := r.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		tracing.EndSpan(span, err)
		return metrics.Failure(httpclient.Classify(err))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	tracing.EndSpan(span, nil, attribute.Int("http.response.status_code", resp.StatusCode))
	return metrics.Success(resp.StatusCode, latency)
}

type loggingRequester struct {
	next   runner.Requester
	logger *stderrFailureLogger
}

func (l *loggingRequester) Do(ctx context.Context) metrics.Outcome {
	out := l.next.Do(ctx)
	if out.Failed() {
		l.logger.LogFailure(out.ErrorKind)
	}
	return out
}

func (l *stderrFailureLogger) LogFailure(kind string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(os.Stderr, "[stress] request failed: %s\n", kind)
}
