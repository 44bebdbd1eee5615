package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("AppEnv = %q, want %q", cfg.AppEnv, EnvDev)
	}
	if cfg.ServiceName != "standings-api" {
		t.Fatalf("ServiceName = %q, want standings-api", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if !cfg.CacheEnabled {
		t.Fatal("CacheEnabled = false, want true by default")
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Fatalf("CacheTTL = %v, want 2m", cfg.CacheTTL)
	}
	if cfg.RefreshMaxWorkers != 4 {
		t.Fatalf("RefreshMaxWorkers = %d, want 4", cfg.RefreshMaxWorkers)
	}
	if !cfg.SwaggerEnabled {
		t.Fatal("SwaggerEnabled = false, want true outside prod")
	}
}

func TestLoadSwaggerDisabledInProd(t *testing.T) {
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatal("SwaggerEnabled = true, want false in prod by default")
	}
}

func TestLoadRejectsInvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "sandbox")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want invalid APP_ENV error")
	}
}

func TestLoadProviderRequiresKey(t *testing.T) {
	t.Setenv("PROVIDER_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want missing PROVIDER_API_KEY error")
	}
}

func TestLoadQueueRequiresTokenAndTarget(t *testing.T) {
	t.Setenv("QUEUE_ENABLED", "true")
	t.Setenv("QUEUE_TOKEN", "qstash-token")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want missing QUEUE_TARGET_BASE_URL error")
	}

	t.Setenv("QUEUE_TARGET_BASE_URL", "https://standings.internal")
	t.Setenv("INTERNAL_JOB_TOKEN", "job-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.QueueRetries != 3 {
		t.Fatalf("QueueRetries = %d, want 3", cfg.QueueRetries)
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want parse REFRESH_INTERVAL error")
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("splitCSV() = %v", got)
	}
}
