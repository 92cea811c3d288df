package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
	"github.com/noah-isme/citizen-portal/pkg/response"
)

// ContextSessionKey is the gin context key storing the admin session.
const ContextSessionKey = "adminSession"

// SessionResolver turns a session cookie value into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.Session, error)
}

// RequireAdmin rejects the request with 401 unless it carries a valid admin
// session cookie. Nothing downstream runs for rejected requests.
func RequireAdmin(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := resolveCookie(c, resolver, cookieName)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// OptionalAdmin attaches the session when the cookie is valid but never blocks.
func OptionalAdmin(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, err := resolveCookie(c, resolver, cookieName); err == nil {
			c.Set(ContextSessionKey, session)
		}
		c.Next()
	}
}

// CurrentSession returns the session attached by RequireAdmin or OptionalAdmin.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	value, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil, false
	}
	session, ok := value.(*models.Session)
	return session, ok && session != nil
}

func resolveCookie(c *gin.Context, resolver SessionResolver, cookieName string) (*models.Session, error) {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return nil, appErrors.ErrUnauthorized
	}

	session, err := resolver.Resolve(c.Request.Context(), token)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, appErrors.ErrUnauthorized
	}
	return session, nil
}
