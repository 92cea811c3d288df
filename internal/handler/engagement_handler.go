package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/citizen-portal/internal/models"
	"github.com/noah-isme/citizen-portal/pkg/response"
)

type engagementService interface {
	Log(ctx context.Context, req models.LogEngagementRequest) (*models.Engagement, error)
	Recent(ctx context.Context) ([]models.EngagementView, error)
}

// EngagementHandler records and lists citizen engagements.
type EngagementHandler struct {
	service engagementService
}

// NewEngagementHandler creates a new handler.
func NewEngagementHandler(svc engagementService) *EngagementHandler {
	return &EngagementHandler{service: svc}
}

// Log godoc
// @Summary Log an engagement
// @Description Accepts any body; fields that cannot be read are stored as absent
// @Tags Engagements
// @Accept json
// @Produce json
// @Param payload body models.LogEngagementRequest false "Engagement fields"
// @Success 200 {object} response.Status
// @Failure 503 {object} response.ErrorEnvelope
// @Router /api/engagement [post]
func (h *EngagementHandler) Log(c *gin.Context) {
	var req models.LogEngagementRequest
	if raw, err := c.GetRawData(); err == nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil {
			req = models.LogEngagementRequest{}
		}
	}

	if _, err := h.service.Log(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "ok")
}

// Recent godoc
// @Summary Newest engagements
// @Tags Admin
// @Produce json
// @Success 200 {array} models.EngagementView
// @Failure 401 {object} response.ErrorEnvelope
// @Router /api/admin/engagements [get]
func (h *EngagementHandler) Recent(c *gin.Context) {
	items, err := h.service.Recent(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}
