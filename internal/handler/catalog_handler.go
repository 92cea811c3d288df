package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
	"github.com/noah-isme/citizen-portal/pkg/response"
)

type catalogService interface {
	List(ctx context.Context) ([]models.Service, error)
	Get(ctx context.Context, id string) (*models.Service, error)
	Upsert(ctx context.Context, svc models.Service) error
	Delete(ctx context.Context, id string) error
}

// CatalogHandler exposes the service catalog, publicly and to admins.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler creates a new handler.
func NewCatalogHandler(svc catalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// List godoc
// @Summary List services
// @Tags Services
// @Produce json
// @Success 200 {array} models.Service
// @Failure 503 {object} response.ErrorEnvelope
// @Router /api/services [get]
func (h *CatalogHandler) List(c *gin.Context) {
	services, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, services)
}

// Get godoc
// @Summary Get a service
// @Description Returns the service, or an empty object when the id is unknown
// @Tags Services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} models.Service
// @Router /api/service/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	svc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if svc == nil {
		response.JSON(c, http.StatusOK, gin.H{})
		return
	}
	response.JSON(c, http.StatusOK, svc)
}

// Upsert godoc
// @Summary Create or replace a service
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body models.Service true "Service document"
// @Success 200 {object} response.Status
// @Failure 400 {object} response.ErrorEnvelope
// @Failure 401 {object} response.ErrorEnvelope
// @Router /api/admin/services [post]
func (h *CatalogHandler) Upsert(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		response.Error(c, appErrors.ErrValidation.Because(err, "invalid service payload"))
		return
	}

	var svc models.Service
	if err := json.Unmarshal(raw, &svc); err != nil {
		response.Error(c, appErrors.ErrValidation.Because(err, "invalid service payload"))
		return
	}

	if err := h.service.Upsert(c.Request.Context(), svc); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "ok")
}

// Delete godoc
// @Summary Delete a service
// @Description Succeeds even when nothing matched
// @Tags Admin
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Status
// @Failure 401 {object} response.ErrorEnvelope
// @Router /api/admin/services/{id} [delete]
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "deleted")
}
