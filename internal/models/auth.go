package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Admin is a portal administrator. Passwords are stored and compared as
// plaintext.
type Admin struct {
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}

// LoginRequest holds the admin login form.
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// Session is the server-side record behind an authenticated admin cookie.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SessionClaims are carried by the signed session cookie.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}
