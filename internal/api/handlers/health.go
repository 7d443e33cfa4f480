package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpstreamPinger checks reachability of the interaction store.
type UpstreamPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	upstream UpstreamPinger
	logger   *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(upstream UpstreamPinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		upstream: upstream,
		logger:   logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services,omitempty"`
}

// Health handles the liveness endpoint
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: "1.0.0",
	})
}

// Ready handles the readiness endpoint by pinging the upstream store
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	services := make(map[string]string)
	status := "ready"
	statusCode := http.StatusOK

	if h.upstream != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.upstream.Ping(ctx); err != nil {
			h.logger.Error("upstream health check failed", zap.Error(err))
			services["interaction_store"] = "unhealthy"
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		} else {
			services["interaction_store"] = "healthy"
		}
	}

	c.JSON(statusCode, HealthResponse{
		Status:   status,
		Version:  "1.0.0",
		Services: services,
	})
}
