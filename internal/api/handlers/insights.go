package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/convopulse/convopulse/internal/analytics"
	"github.com/convopulse/convopulse/internal/service"
	"github.com/convopulse/convopulse/pkg/validator"
)

// InsightsHandler serves the derived dashboard metrics
type InsightsHandler struct {
	insights *service.InsightsService
	logger   *zap.Logger
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insights *service.InsightsService, logger *zap.Logger) *InsightsHandler {
	return &InsightsHandler{
		insights: insights,
		logger:   logger,
	}
}

// Overview returns the system-wide KPI metrics
// @Summary Get overview KPIs
// @Tags insights
// @Produce json
// @Success 200 {object} analytics.DashboardMetrics
// @Router /v1/overview [get]
func (h *InsightsHandler) Overview(c *gin.Context) {
	metrics, err := h.insights.Overview(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute overview", zap.Error(err))
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// SegmentsQuery represents segment query parameters
type SegmentsQuery struct {
	Key string `form:"key" binding:"omitempty,groupkey"`
}

// Segments returns per-segment performance metrics
// @Summary Get segment performance
// @Tags insights
// @Produce json
// @Param key query string false "Grouping key (intent, agent)"
// @Success 200 {object} service.SegmentsResult
// @Router /v1/segments [get]
func (h *InsightsHandler) Segments(c *gin.Context) {
	var q SegmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationErrors := validator.ParseValidationErrors(err)
		if len(validationErrors) > 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "validation_error",
				Message: validationErrors.Error(),
				Details: validationErrors,
			})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	result, err := h.insights.Segments(c.Request.Context(), analytics.GroupKey(q.Key))
	if err != nil {
		h.logger.Error("failed to compute segment performance", zap.Error(err))
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Quality returns conversation quality scores and tier counts
// @Summary Get conversation quality report
// @Tags insights
// @Produce json
// @Success 200 {object} service.QualityReport
// @Router /v1/quality [get]
func (h *InsightsHandler) Quality(c *gin.Context) {
	report, err := h.insights.Quality(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute quality report", zap.Error(err))
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Satisfaction returns the satisfaction trend and breakdowns
// @Summary Get satisfaction analytics
// @Tags insights
// @Produce json
// @Success 200 {object} service.SatisfactionResult
// @Router /v1/satisfaction [get]
func (h *InsightsHandler) Satisfaction(c *gin.Context) {
	result, err := h.insights.Satisfaction(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute satisfaction analytics", zap.Error(err))
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// LeaderboardQuery represents leaderboard query parameters
type LeaderboardQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Leaderboard returns the top interactions by composite score
// @Summary Get interaction leaderboard
// @Tags insights
// @Produce json
// @Param limit query int false "Maximum entries (default 15)"
// @Success 200 {array} analytics.LeaderboardEntry
// @Router /v1/leaderboard [get]
func (h *InsightsHandler) Leaderboard(c *gin.Context) {
	var q LeaderboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	entries, err := h.insights.Leaderboard(c.Request.Context(), q.Limit)
	if err != nil {
		h.logger.Error("failed to compute leaderboard", zap.Error(err))
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
