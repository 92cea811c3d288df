package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/citizen-portal/internal/models"
	appErrors "github.com/noah-isme/citizen-portal/pkg/errors"
)

const sessionIssuer = "citizen-portal"

type adminStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, admin models.Admin) error
}

// SessionStore persists server-side admin sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionConfig defines how session cookies are signed and how long they live.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// SessionService implements admin login, logout and session resolution.
type SessionService struct {
	admins    adminStore
	sessions  SessionStore
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	config    SessionConfig
	now       func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(admins adminStore, sessions SessionStore, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, config SessionConfig) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.TTL <= 0 {
		config.TTL = 12 * time.Hour
	}
	return &SessionService{
		admins:    admins,
		sessions:  sessions,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// TTL is the lifetime of newly issued sessions.
func (s *SessionService) TTL() time.Duration {
	return s.config.TTL
}

// Login checks the credentials and opens a session. On failure nothing is
// created.
func (s *SessionService) Login(ctx context.Context, req models.LoginRequest) (string, *models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordLogin(false)
		return "", nil, appErrors.ErrValidation.Because(err, "username and password are required")
	}

	admin, err := s.admins.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.metrics.RecordLogin(false)
			return "", nil, appErrors.ErrInvalidCredentials
		}
		return "", nil, appErrors.ErrStoreUnavailable.Because(err, "failed to fetch admin")
	}

	if subtle.ConstantTimeCompare([]byte(admin.Password), []byte(req.Password)) != 1 {
		s.metrics.RecordLogin(false)
		s.logger.Info("admin login rejected", zap.String("username", req.Username))
		return "", nil, appErrors.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		Username:  admin.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.TTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, appErrors.ErrStoreUnavailable.Because(err, "failed to create session")
	}

	token, err := s.sign(session)
	if err != nil {
		_ = s.sessions.Delete(ctx, session.ID)
		return "", nil, appErrors.ErrInternal.Because(err, "failed to sign session")
	}

	s.metrics.RecordLogin(true)
	s.logger.Info("admin logged in", zap.String("username", admin.Username), zap.String("session_id", session.ID))
	return token, session, nil
}

// Resolve verifies the cookie token and loads its live session.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, appErrors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(token, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.ErrUnauthorized.Because(err, "invalid session")
	}

	claims, ok := parsed.Claims.(*models.SessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return nil, appErrors.ErrUnauthorized.WithMessage("invalid session claims")
	}

	session, err := s.sessions.FindByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, appErrors.ErrUnauthorized.WithMessage("session expired")
		}
		return nil, appErrors.ErrStoreUnavailable.Because(err, "failed to load session")
	}
	if session.Expired(s.now()) || session.Username != claims.Subject {
		return nil, appErrors.ErrUnauthorized.WithMessage("session expired")
	}
	return session, nil
}

// Logout drops the session. Unknown ids are ignored.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return appErrors.ErrStoreUnavailable.Because(err, "failed to end session")
	}
	return nil
}

// EnsureDefaultAdmin seeds the admin store when it is empty.
func (s *SessionService) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	total, err := s.admins.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if total > 0 {
		return nil
	}
	if err := s.admins.Create(ctx, models.Admin{Username: username, Password: password}); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	s.logger.Warn("seeded default admin account", zap.String("username", username))
	return nil
}

func (s *SessionService) sign(session *models.Session) (string, error) {
	claims := &models.SessionClaims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   session.Username,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			NotBefore: jwt.NewNumericDate(session.CreatedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}
