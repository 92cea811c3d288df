package handler

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/citizen-portal/internal/middleware"
)

//go:embed pages/*.html
var pageFS embed.FS

// PageHandler serves the embedded HTML front end.
type PageHandler struct {
	pages embed.FS
}

// NewPageHandler creates a new handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{pages: pageFS}
}

// Index serves the citizen-facing portal.
func (h *PageHandler) Index(c *gin.Context) {
	h.serve(c, "pages/index.html")
}

// Admin serves the dashboard, or redirects anonymous visitors to the login form.
// It expects middleware.OptionalAdmin to have run.
func (h *PageHandler) Admin(c *gin.Context) {
	if _, ok := middleware.CurrentSession(c); !ok {
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}
	h.serve(c, "pages/admin.html")
}

// Login serves the admin page, whose login form is shown to anonymous visitors.
func (h *PageHandler) Login(c *gin.Context) {
	h.serve(c, "pages/admin.html")
}

// Manage serves the service management page.
func (h *PageHandler) Manage(c *gin.Context) {
	h.serve(c, "pages/manage.html")
}

func (h *PageHandler) serve(c *gin.Context, name string) {
	body, err := h.pages.ReadFile(name)
	if err != nil {
		c.String(http.StatusInternalServerError, "page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}
