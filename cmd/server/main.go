package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fleetwise-id/armada-insight/internal/analysis"
	"github.com/fleetwise-id/armada-insight/internal/config"
	"github.com/fleetwise-id/armada-insight/internal/httpapi"
	"github.com/fleetwise-id/armada-insight/internal/narrative"
	"github.com/fleetwise-id/armada-insight/internal/render"
	"github.com/fleetwise-id/armada-insight/internal/telemetry"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file (optional)")
		addr       = flag.String("addr", "", "Listen address override, e.g. :8080")
		noPDF      = flag.Bool("no-pdf", false, "Disable the PDF endpoint")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if strings.TrimSpace(*addr) != "" {
		cfg.Server.Addr = *addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		log.Fatalf("telemetry setup: %v", err)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	narrator := buildNarrator(ctx, cfg)

	engine, err := analysis.NewEngine(cfg.Analysis, narrator)
	if err != nil {
		log.Fatalf("engine config: %v", err)
	}

	var renderer httpapi.PDFRenderer
	if !*noPDF {
		renderer = render.NewChromiumPDFRenderer()
	}

	handler := httpapi.NewServer(engine, renderer, cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("armada-insight listening on %s (cache=%s)", cfg.Server.Addr, cfg.Cache.Backend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// buildNarrator wires the narrative stack: Anthropic transport wrapped in
// the configured cache. A missing API key is not fatal; the engine runs in
// degraded mode with deterministic fallbacks.
func buildNarrator(ctx context.Context, cfg config.Config) analysis.Narrator {
	caller, err := narrative.NewAnthropicCallerFromEnv(cfg.Narrative.Model, cfg.Narrative.MaxTokens)
	if err != nil {
		log.Printf("narrative disabled: %v (reports will be DEGRADED)", err)
		return nil
	}

	var cache narrative.Cache
	switch cfg.Cache.Backend {
	case "sqlite":
		c, err := narrative.NewSQLiteCache(cfg.Cache.SQLitePath)
		if err != nil {
			log.Fatalf("open sqlite cache: %v", err)
		}
		cache = c
	case "redis":
		c, err := narrative.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisDB,
			time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
		if err != nil {
			log.Fatalf("connect redis cache: %v", err)
		}
		cache = c
	default:
		cache = narrative.NewMemoryCache()
	}

	return narrative.NewCachedNarrator(narrative.NewNarrator(caller), cache)
}
