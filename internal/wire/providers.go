// Package wire assembles the application object graph.
package wire

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/convopulse/convopulse/internal/api"
	"github.com/convopulse/convopulse/internal/api/handlers"
	"github.com/convopulse/convopulse/internal/client"
	"github.com/convopulse/convopulse/internal/config"
	"github.com/convopulse/convopulse/internal/service"
)

// ProviderSet is the main provider set that includes all application dependencies.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideUpstreamClient,
	ProvideInsightsService,
	ProvideHealthHandler,
	ProvideInsightsHandler,
	ProvideExportHandler,
	ProvideHandlers,
	ProvideRouter,
	ProvideApplication,
)

// Application holds all the dependencies needed to run the server.
type Application struct {
	Config   *config.Config
	Logger   *zap.Logger
	Upstream *client.Client
	Insights *service.InsightsService
	Router   *gin.Engine
	Handlers *api.Handlers
}

// Cleanup releases held resources. The upstream client keeps no
// persistent connections, so this only flushes the logger.
func (a *Application) Cleanup() {
	_ = a.Logger.Sync()
}

// ProvideLogger creates a configured zap logger.
func ProvideLogger(cfg *config.Config) *zap.Logger {
	var zapConfig zap.Config
	if cfg.IsDevelopment() {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	logger, err := zapConfig.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return logger
}

// ProvideUpstreamClient creates the interaction store client.
func ProvideUpstreamClient(cfg *config.Config, logger *zap.Logger) *client.Client {
	return client.New(client.Config{
		BaseURL:         cfg.Upstream.BaseURL,
		Timeout:         cfg.Upstream.Timeout,
		RetryMaxElapsed: cfg.Upstream.RetryMaxElapsed,
	}, logger)
}

// ProvideInsightsService creates the aggregation service backed by the
// upstream client.
func ProvideInsightsService(upstream *client.Client, cfg *config.Config, logger *zap.Logger) *service.InsightsService {
	return service.NewInsightsService(upstream, cfg.Analytics, cfg.Upstream.FetchLimit, logger)
}

// ProvideHealthHandler creates a new HealthHandler.
func ProvideHealthHandler(upstream *client.Client, logger *zap.Logger) *handlers.HealthHandler {
	return handlers.NewHealthHandler(upstream, logger)
}

// ProvideInsightsHandler creates a new InsightsHandler.
func ProvideInsightsHandler(insights *service.InsightsService, logger *zap.Logger) *handlers.InsightsHandler {
	return handlers.NewInsightsHandler(insights, logger)
}

// ProvideExportHandler creates a new ExportHandler.
func ProvideExportHandler(insights *service.InsightsService, logger *zap.Logger) *handlers.ExportHandler {
	return handlers.NewExportHandler(insights, logger)
}

// ProvideHandlers groups all handlers for the router.
func ProvideHandlers(
	health *handlers.HealthHandler,
	insights *handlers.InsightsHandler,
	export *handlers.ExportHandler,
) *api.Handlers {
	return &api.Handlers{
		Health:   health,
		Insights: insights,
		Export:   export,
	}
}

// ProvideRouter creates the Gin router with all routes configured.
func ProvideRouter(h *api.Handlers, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	return api.SetupRouter(h, cfg, logger)
}

// ProvideApplication creates the Application with all dependencies.
func ProvideApplication(
	cfg *config.Config,
	logger *zap.Logger,
	upstream *client.Client,
	insights *service.InsightsService,
	router *gin.Engine,
	h *api.Handlers,
) *Application {
	return &Application{
		Config:   cfg,
		Logger:   logger,
		Upstream: upstream,
		Insights: insights,
		Router:   router,
		Handlers: h,
	}
}
