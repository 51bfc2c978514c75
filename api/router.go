package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/sitebrief/api/handler"
	"github.com/use-agent/sitebrief/api/middleware"
	"github.com/use-agent/sitebrief/cache"
	"github.com/use-agent/sitebrief/config"
	"github.com/use-agent/sitebrief/report"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(p *report.Pipeline, r report.Renderer, cc *cache.Cache, cfg *config.Config, logger *slog.Logger, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	eng := gin.New()
	eng.Use(gin.Recovery())
	eng.Use(gin.Logger())

	v1 := eng.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Report generation — the single operation this service exposes.
	protected.POST("/report", handler.Report(p, r, cc, logger))

	return eng
}
