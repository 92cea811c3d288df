package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/citizen-portal/pkg/response"
)

const searchNotConfigured = "AI search not configured. Add vector DB + LLM."

// SearchHandler is the placeholder for semantic search.
type SearchHandler struct{}

// NewSearchHandler creates a new handler.
func NewSearchHandler() *SearchHandler {
	return &SearchHandler{}
}

// Search godoc
// @Summary Semantic search (not configured)
// @Tags Search
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/ai/search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"message": searchNotConfigured})
}
