package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Rollup.Years != 5 {
		t.Errorf("expected 5 rollup years, got %d", cfg.Rollup.Years)
	}
	if cfg.Rollup.Location != time.UTC {
		t.Errorf("expected UTC, got %v", cfg.Rollup.Location)
	}
	if cfg.Rollup.CacheTTL != 5*time.Minute {
		t.Errorf("expected 5m cache TTL, got %v", cfg.Rollup.CacheTTL)
	}
	if !cfg.Redis.Enabled {
		t.Error("expected redis enabled by default")
	}
	if cfg.Database.SlowQueryThreshold != 500*time.Millisecond {
		t.Errorf("expected 500ms slow query threshold, got %v", cfg.Database.SlowQueryThreshold)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ROLLUP_YEARS", "3")
	t.Setenv("ROLLUP_TIMEZONE", "Asia/Bangkok")
	t.Setenv("ROLLUP_CACHE_TTL", "30s")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg := Load()

	if cfg.Rollup.Years != 3 {
		t.Errorf("expected 3 rollup years, got %d", cfg.Rollup.Years)
	}
	if cfg.Rollup.Location.String() != "Asia/Bangkok" {
		t.Errorf("expected Asia/Bangkok, got %v", cfg.Rollup.Location)
	}
	if cfg.Rollup.CacheTTL != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.Rollup.CacheTTL)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis disabled")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected fallback port 8080, got %d", cfg.Server.Port)
	}
}

func TestLoad_UnknownTimezoneFallsBack(t *testing.T) {
	t.Setenv("ROLLUP_TIMEZONE", "Mars/Olympus_Mons")

	if cfg := Load(); cfg.Rollup.Location != time.UTC {
		t.Errorf("expected UTC fallback, got %v", cfg.Rollup.Location)
	}
}
