package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/citizen-portal/internal/models"
	"github.com/noah-isme/citizen-portal/pkg/response"
)

type insightsService interface {
	Report(ctx context.Context) (*models.InsightsReport, error)
}

type exportService interface {
	EngagementsCSV(ctx context.Context) ([]byte, error)
	InsightsPDF(ctx context.Context) ([]byte, error)
}

// InsightsHandler serves the admin analytics views and downloads.
type InsightsHandler struct {
	insights insightsService
	exports  exportService
}

// NewInsightsHandler creates a new handler.
func NewInsightsHandler(insights insightsService, exports exportService) *InsightsHandler {
	return &InsightsHandler{insights: insights, exports: exports}
}

// Insights godoc
// @Summary Engagement insights
// @Tags Admin
// @Produce json
// @Success 200 {object} models.InsightsReport
// @Failure 401 {object} response.ErrorEnvelope
// @Failure 503 {object} response.ErrorEnvelope
// @Router /api/admin/insights [get]
func (h *InsightsHandler) Insights(c *gin.Context) {
	report, err := h.insights.Report(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// ExportCSV godoc
// @Summary Download engagements as CSV
// @Tags Admin
// @Produce text/csv
// @Success 200 {file} file
// @Failure 401 {object} response.ErrorEnvelope
// @Router /api/admin/export_csv [get]
func (h *InsightsHandler) ExportCSV(c *gin.Context) {
	payload, err := h.exports.EngagementsCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "text/csv", "engagements.csv", payload)
}

// ExportInsightsPDF godoc
// @Summary Download insights as PDF
// @Tags Admin
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 401 {object} response.ErrorEnvelope
// @Router /api/admin/export_insights_pdf [get]
func (h *InsightsHandler) ExportInsightsPDF(c *gin.Context) {
	payload, err := h.exports.InsightsPDF(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "application/pdf", "insights.pdf", payload)
}
