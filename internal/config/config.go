package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fleetwise-id/armada-insight/internal/analysis"
)

type ServerConfig struct {
	Addr           string  `yaml:"addr"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

type NarrativeConfig struct {
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
}

type CacheConfig struct {
	// Backend selects the narrative cache: "memory", "sqlite", or "redis".
	Backend    string `yaml:"backend"`
	SQLitePath string `yaml:"sqlite_path"`
	RedisAddr  string `yaml:"redis_addr"`
	RedisDB    int    `yaml:"redis_db"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

type TelemetryConfig struct {
	// OTLPEndpoint empty means tracing stays off.
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Analysis  analysis.Config `yaml:"analysis"`
	Narrative NarrativeConfig `yaml:"narrative"`
	Cache     CacheConfig     `yaml:"cache"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			RateLimitRPS:   10,
			RateLimitBurst: 20,
		},
		Analysis: analysis.DefaultConfig(),
		Narrative: NarrativeConfig{
			Model:     "",
			MaxTokens: 1024,
		},
		Cache: CacheConfig{
			Backend:    "memory",
			SQLitePath: "narratives.db",
			RedisAddr:  "localhost:6379",
			TTLMinutes: 1440,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "armada-insight",
		},
	}
}

// Load layers an optional YAML file and then environment overrides on top of
// the defaults. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		cfg.Cache.RedisAddr = addr
	}
	if backend := strings.TrimSpace(os.Getenv("NARRATIVE_CACHE_BACKEND")); backend != "" {
		cfg.Cache.Backend = backend
	}
	if endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); endpoint != "" {
		cfg.Telemetry.OTLPEndpoint = endpoint
	}
	if model := strings.TrimSpace(os.Getenv("NARRATIVE_MODEL")); model != "" {
		cfg.Narrative.Model = model
	}
	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil && v > 0 {
			cfg.Server.RateLimitRPS = v
		}
	}
}

func validate(cfg Config) error {
	switch cfg.Cache.Backend {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("cache backend %q is not one of memory, sqlite, redis", cfg.Cache.Backend)
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server addr must not be empty")
	}
	if cfg.Server.RateLimitRPS <= 0 || cfg.Server.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit values must be positive")
	}
	return nil
}
