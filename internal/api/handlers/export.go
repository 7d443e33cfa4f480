package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/convopulse/convopulse/internal/export"
	"github.com/convopulse/convopulse/internal/service"
)

// ExportHandler serves downloadable report files
type ExportHandler struct {
	insights *service.InsightsService
	logger   *zap.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(insights *service.InsightsService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		insights: insights,
		logger:   logger,
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Segments streams the segment performance report as an XLSX workbook
// @Summary Export segment performance report
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200
// @Router /v1/export/segments.xlsx [get]
func (h *ExportHandler) Segments(c *gin.Context) {
	segments, err := h.insights.Segments(c.Request.Context(), "")
	if err != nil {
		h.logger.Error("failed to compute segments for export", zap.Error(err))
		c.Error(err)
		return
	}

	satisfaction, err := h.insights.Satisfaction(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to compute satisfaction for export", zap.Error(err))
		c.Error(err)
		return
	}

	workbook, err := export.SegmentReport(segments.Ranked, satisfaction.ByIntent)
	if err != nil {
		h.logger.Error("failed to build export workbook", zap.Error(err))
		c.Error(err)
		return
	}
	defer workbook.Close()

	c.Header("Content-Disposition", `attachment; filename="segment_performance.xlsx"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if _, err := workbook.WriteTo(c.Writer); err != nil {
		h.logger.Error("failed to stream export workbook", zap.Error(err))
	}
}
