package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/convopulse/convopulse/internal/api/handlers"
	"github.com/convopulse/convopulse/internal/api/middleware"
	"github.com/convopulse/convopulse/internal/config"
	"github.com/convopulse/convopulse/pkg/metrics"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	Health   *handlers.HealthHandler
	Insights *handlers.InsightsHandler
	Export   *handlers.ExportHandler
}

// SetupRouter configures the Gin router with all routes and middleware
func SetupRouter(h *Handlers, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoints
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1
	v1 := r.Group("/v1")
	{
		v1.GET("/overview", h.Insights.Overview)
		v1.GET("/segments", h.Insights.Segments)
		v1.GET("/quality", h.Insights.Quality)
		v1.GET("/satisfaction", h.Insights.Satisfaction)
		v1.GET("/leaderboard", h.Insights.Leaderboard)

		export := v1.Group("/export")
		{
			export.GET("/segments.xlsx", h.Export.Segments)
		}
	}

	return r
}
