package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the load run parameters. Flags override config-file values.
type Config struct {
	TargetURL     string        `mapstructure:"target"`
	Concurrency   int           `mapstructure:"concurrency"`
	Total         int           `mapstructure:"total"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Rate          int           `mapstructure:"rate"`
	ProgressEvery int           `mapstructure:"progress_every"`
	JSONOutput    bool          `mapstructure:"json_output"`
	Dashboard     bool          `mapstructure:"dashboard"`
	LogErrors     bool          `mapstructure:"log_errors"`
	ConfigFile    string        `mapstructure:"-"`
	Tracing       TracingConfig `mapstructure:"tracing"`
}

// TracingConfig controls optional OpenTelemetry export of per-request spans.
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Protocol    string  `mapstructure:"protocol"` // "grpc" or "http"
	ServiceName string  `mapstructure:"service_name"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	Insecure    bool    `mapstructure:"insecure"`
	Propagate   bool    `mapstructure:"propagate"`
}

// Enabled reports whether an OTLP endpoint has been configured.
func (t TracingConfig) Enabled() bool {
	return strings.TrimSpace(t.Endpoint) != ""
}

// ShouldPropagate reports whether W3C trace headers are injected into
// outgoing requests.
func (t TracingConfig) ShouldPropagate() bool {
	return t.Propagate
}

type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

// Validate rejects invalid run parameters before any worker starts. This is
// the only surfaced failure path; once a run is dispatched, every network
// outcome is recorded as data.
func (c Config) Validate() error {
	var issues []string

	if strings.TrimSpace(c.TargetURL) == "" {
		issues = append(issues, "target is required")
	}
	if c.Concurrency < 1 {
		issues = append(issues, fmt.Sprintf("concurrency must be at least 1, got %d", c.Concurrency))
	}
	if c.Total < 0 {
		issues = append(issues, fmt.Sprintf("total must not be negative, got %d", c.Total))
	}
	if c.Timeout <= 0 {
		issues = append(issues, fmt.Sprintf("timeout must be positive, got %s", c.Timeout))
	}
	if c.Rate < 0 {
		issues = append(issues, fmt.Sprintf("rate must not be negative, got %d", c.Rate))
	}
	if c.ProgressEvery < 0 {
		issues = append(issues, fmt.Sprintf("progress_every must not be negative, got %d", c.ProgressEvery))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		issues = append(issues, fmt.Sprintf("tracing sample_rate must be between 0.0 and 1.0, got %g", c.Tracing.SampleRate))
	}
	switch strings.ToLower(strings.TrimSpace(c.Tracing.Protocol)) {
	case "", "grpc", "http":
	default:
		issues = append(issues, fmt.Sprintf("tracing protocol must be \"grpc\" or \"http\", got %q", c.Tracing.Protocol))
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}
