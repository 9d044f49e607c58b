package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "memory" {
		t.Fatalf("backend = %q", cfg.Cache.Backend)
	}
	if len(cfg.Analysis.ROIBands) == 0 {
		t.Fatal("analysis defaults missing")
	}
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  addr: ":9090"
cache:
  backend: sqlite
  sqlite_path: /tmp/narr.db
analysis:
  assumed_monthly_km: 12000
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "sqlite" || cfg.Cache.SQLitePath != "/tmp/narr.db" {
		t.Fatalf("cache = %+v", cfg.Cache)
	}
	if cfg.Analysis.AssumedMonthlyKm != 12000 {
		t.Fatalf("assumed_monthly_km = %v", cfg.Analysis.AssumedMonthlyKm)
	}
	// Untouched sections keep their defaults.
	if cfg.Server.RateLimitRPS != 10 {
		t.Fatalf("rate limit = %v", cfg.Server.RateLimitRPS)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("NARRATIVE_CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "cache:6379" {
		t.Fatalf("cache = %+v", cfg.Cache)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("NARRATIVE_CACHE_BACKEND", "memcached")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
