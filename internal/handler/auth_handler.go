package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/citizen-portal/internal/middleware"
	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
	"github.com/noah-isme/citizen-portal/pkg/response"
)

type sessionService interface {
	Login(ctx context.Context, req models.LoginRequest) (string, *models.Session, error)
	Logout(ctx context.Context, sessionID string) error
	TTL() time.Duration
}

// CookieConfig controls the admin session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler wires the admin login form and logout endpoint to the session service.
type AuthHandler struct {
	service sessionService
	cookie  CookieConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc sessionService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: svc, cookie: cookie}
}

// Login godoc
// @Summary Admin login
// @Description Form login; on success sets the session cookie and redirects to /admin
// @Tags Authentication
// @Accept x-www-form-urlencoded
// @Produce plain
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 302
// @Failure 401 {string} string "Login failed"
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	_ = c.ShouldBind(&req)

	token, session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, appErrors.ErrInvalidCredentials) || errors.Is(err, appErrors.ErrValidation) {
			c.String(http.StatusUnauthorized, "Login failed")
			return
		}
		response.Error(c, err)
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int(h.service.TTL().Seconds())
	}
	h.setCookie(c, token, maxAge)
	c.Redirect(http.StatusFound, "/admin")
}

// Logout godoc
// @Summary Admin logout
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Status
// @Failure 401 {object} response.ErrorEnvelope
// @Router /api/admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if session, ok := middleware.CurrentSession(c); ok {
		if err := h.service.Logout(c.Request.Context(), session.ID); err != nil {
			response.Error(c, err)
			return
		}
	}
	h.setCookie(c, "", -1)
	response.OK(c, "logged out")
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
