package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/use-agent/sitebrief/api"
	"github.com/use-agent/sitebrief/budget"
	"github.com/use-agent/sitebrief/cache"
	"github.com/use-agent/sitebrief/cleaner"
	"github.com/use-agent/sitebrief/config"
	"github.com/use-agent/sitebrief/crawler"
	"github.com/use-agent/sitebrief/llm"
	"github.com/use-agent/sitebrief/report"
	"github.com/use-agent/sitebrief/search"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("sitebrief starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"crawlMaxPages", cfg.Crawl.MaxPages,
	)

	if cfg.LLM.APIKey == "" {
		slog.Error("SITEBRIEF_LLM_API_KEY is required")
		os.Exit(1)
	}

	// ── 3. Initialise tokenizer (loads the BPE vocabulary once) ─────
	tok, err := budget.NewTokenizer()
	if err != nil {
		slog.Error("failed to initialise tokenizer", "error", err)
		os.Exit(1)
	}

	// ── 4. Build pipeline stages ────────────────────────────────────
	cr := crawler.New(cfg.Crawl, crawler.NewHTTPFetcher(), slog.Default())
	cl := cleaner.New(cfg.Cleaner)
	sf := search.NewDuckDuckGo(cfg.Search, "")
	synth := llm.NewClient(cfg.LLM, nil)

	pipeline := report.NewPipeline(cr, cl, sf, tok, synth, cfg.Budget, slog.Default())
	renderer := report.NewPDFRenderer()

	// ── 4b. Initialise report cache ─────────────────────────────────
	var cc *cache.Cache
	if cfg.Cache.Enabled {
		cc = cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(pipeline, renderer, cc, cfg, slog.Default(), startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("sitebrief stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
