package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JackSam678/Stress/internal/config"
)

func writeYAMLConfig(t *testing.T, settings map[string]interface{}) string {
	t.Helper()

	data, err := yaml.Marshal(settings)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "stress.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	loader := config.NewLoader()
	cfg, err := loader.Load([]string{"--target", "example.com"})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.TargetURL != "example.com" {
		t.Errorf("expected target example.com, got %q", cfg.TargetURL)
	}
	if cfg.Concurrency != 50 {
		t.Errorf("expected default concurrency 50, got %d", cfg.Concurrency)
	}
	if cfg.Total != 1000 {
		t.Errorf("expected default total 1000, got %d", cfg.Total)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %s", cfg.Timeout)
	}
	if cfg.Rate != 0 {
		t.Errorf("expected unpaced by default, got rate %d", cfg.Rate)
	}
	if cfg.ProgressEvery != 10 {
		t.Errorf("expected default progress interval 10, got %d", cfg.ProgressEvery)
	}
	if cfg.Tracing.Enabled() {
		t.Error("expected tracing disabled by default")
	}
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := writeYAMLConfig(t, map[string]interface{}{
		"target":         "https://example.com/health",
		"concurrency":    25,
		"total":          500,
		"timeout":        "2s",
		"rate":           100,
		"progress_every": 50,
		"json_output":    true,
		"tracing": map[string]interface{}{
			"endpoint":    "localhost:4317",
			"protocol":    "http",
			"sample_rate": 0.25,
			"propagate":   true,
		},
	})

	loader := config.NewLoader()
	cfg, err := loader.Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.TargetURL != "https://example.com/health" {
		t.Errorf("unexpected target %q", cfg.TargetURL)
	}
	if cfg.Concurrency != 25 || cfg.Total != 500 {
		t.Errorf("unexpected load shape: concurrency=%d total=%d", cfg.Concurrency, cfg.Total)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %s", cfg.Timeout)
	}
	if cfg.Rate != 100 {
		t.Errorf("expected rate 100, got %d", cfg.Rate)
	}
	if cfg.ProgressEvery != 50 {
		t.Errorf("expected progress interval 50, got %d", cfg.ProgressEvery)
	}
	if !cfg.JSONOutput {
		t.Error("expected JSON output enabled")
	}
	if cfg.Tracing.Endpoint != "localhost:4317" || cfg.Tracing.Protocol != "http" {
		t.Errorf("unexpected tracing config: %+v", cfg.Tracing)
	}
	if cfg.Tracing.SampleRate != 0.25 {
		t.Errorf("expected sample rate 0.25, got %g", cfg.Tracing.SampleRate)
	}
	if !cfg.Tracing.Propagate {
		t.Error("expected propagation enabled")
	}
}

func TestLoadBareNumberTimeoutMeansSeconds(t *testing.T) {
	path := writeYAMLConfig(t, map[string]interface{}{
		"target":  "example.com",
		"timeout": 30,
	})

	loader := config.NewLoader()
	cfg, err := loader.Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected bare 30 interpreted as 30s, got %s", cfg.Timeout)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := writeYAMLConfig(t, map[string]interface{}{
		"target":      "example.com",
		"concurrency": 5,
		"total":       10,
	})

	loader := config.NewLoader()
	cfg, err := loader.Load([]string{
		"--config", path,
		"--concurrency", "80",
		"--total", "2000",
		"--timeout", "1s",
	})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Concurrency != 80 {
		t.Errorf("expected flag to override concurrency, got %d", cfg.Concurrency)
	}
	if cfg.Total != 2000 {
		t.Errorf("expected flag to override total, got %d", cfg.Total)
	}
	if cfg.Timeout != time.Second {
		t.Errorf("expected flag to override timeout, got %s", cfg.Timeout)
	}
	// Untouched file values survive.
	if cfg.TargetURL != "example.com" {
		t.Errorf("expected file target preserved, got %q", cfg.TargetURL)
	}
}

func TestLoadHelpAndEmptyArgs(t *testing.T) {
	loader := config.NewLoader()

	if _, err := loader.Load([]string{"--help"}); !errors.Is(err, config.ErrHelpRequested) {
		t.Errorf("expected ErrHelpRequested for --help, got %v", err)
	}
	if _, err := loader.Load(nil); !errors.Is(err, config.ErrHelpRequested) {
		t.Errorf("expected ErrHelpRequested for empty args, got %v", err)
	}
}

func TestLoadRejectsMissingConfigFile(t *testing.T) {
	loader := config.NewLoader()
	if _, err := loader.Load([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml")}); err == nil {
		t.Error("expected error for missing config file")
	}
}
