package config_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JackSam678/Stress/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		TargetURL:     "http://example.com/",
		Concurrency:   50,
		Total:         1000,
		Timeout:       10 * time.Second,
		ProgressEvery: 10,
		Tracing:       config.TracingConfig{Protocol: "grpc", SampleRate: 1.0},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejectsBadParameters(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*config.Config)
		wantMsg string
	}{
		{"missing target", func(c *config.Config) { c.TargetURL = " " }, "target is required"},
		{"zero concurrency", func(c *config.Config) { c.Concurrency = 0 }, "concurrency must be at least 1"},
		{"negative concurrency", func(c *config.Config) { c.Concurrency = -3 }, "concurrency must be at least 1"},
		{"negative total", func(c *config.Config) { c.Total = -1 }, "total must not be negative"},
		{"zero timeout", func(c *config.Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"negative rate", func(c *config.Config) { c.Rate = -1 }, "rate must not be negative"},
		{"bad sample rate", func(c *config.Config) { c.Tracing.SampleRate = 1.5 }, "sample_rate"},
		{"bad trace protocol", func(c *config.Config) { c.Tracing.Protocol = "udp" }, "protocol"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tc.wantMsg, err.Error())
			}
		})
	}
}

func TestValidateCollectsAllIssues(t *testing.T) {
	cfg := validConfig()
	cfg.TargetURL = ""
	cfg.Concurrency = 0
	cfg.Timeout = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}

	var vErr config.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(vErr.Issues()) != 3 {
		t.Errorf("expected 3 issues, got %d: %v", len(vErr.Issues()), vErr.Issues())
	}
}

func TestTracingEnabled(t *testing.T) {
	cfg := config.TracingConfig{}
	if cfg.Enabled() {
		t.Error("expected tracing disabled without an endpoint")
	}
	cfg.Endpoint = "localhost:4317"
	if !cfg.Enabled() {
		t.Error("expected tracing enabled with an endpoint")
	}
}
