package cli

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/citizen-portal/internal/handler"
	"github.com/noah-isme/citizen-portal/internal/httpserver"
	"github.com/noah-isme/citizen-portal/internal/repository"
	"github.com/noah-isme/citizen-portal/internal/service"
	"github.com/noah-isme/citizen-portal/pkg/cache"
	"github.com/noah-isme/citizen-portal/pkg/config"
	"github.com/noah-isme/citizen-portal/pkg/database"
)

// App holds the wired portal components.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	Metrics     *service.MetricsService
	Sessions    *service.SessionService
	Catalog     *service.CatalogService
	Engagements *service.EngagementService
	Insights    *service.InsightsService
	Exports     *service.ExportService
}

// Bootstrap dials Postgres and Redis concurrently and builds every service.
func Bootstrap(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*App, error) {
	var (
		db          *sqlx.DB
		redisClient *redis.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		conn, err := database.NewPostgres(gctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		db = conn
		return nil
	})
	g.Go(func() error {
		client, err := cache.NewRedis(gctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		redisClient = client
		return nil
	})
	if err := g.Wait(); err != nil {
		if db != nil {
			_ = db.Close()
		}
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}

	metrics := service.NewMetricsService()

	var sessionStore service.SessionStore
	if redisClient != nil {
		sessionStore = repository.NewRedisSessionStore(redisClient)
	} else {
		logr.Warn("redis disabled, admin sessions are kept in process memory")
		sessionStore = repository.NewInMemorySessionStore()
	}

	cacheEnabled := cfg.Insights.CacheEnabled && redisClient != nil
	if cfg.Insights.CacheEnabled && redisClient == nil {
		logr.Warn("insights cache requested but redis is disabled")
	}
	cacheSvc := service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metrics, cfg.Insights.CacheTTL, logr, cacheEnabled)

	engagementRepo := repository.NewEngagementRepository(db)
	insights := service.NewInsightsService(engagementRepo, cacheSvc, metrics, logr)

	return &App{
		Config:      cfg,
		Logger:      logr,
		DB:          db,
		Redis:       redisClient,
		Metrics:     metrics,
		Sessions:    service.NewSessionService(repository.NewAdminRepository(db), sessionStore, validator.New(), metrics, logr, service.SessionConfig{Secret: cfg.Session.Secret, TTL: cfg.Session.TTL}),
		Catalog:     service.NewCatalogService(repository.NewServiceRepository(db), metrics, logr),
		Engagements: service.NewEngagementService(engagementRepo, metrics, logr, cfg.Engagements.RecentLimit),
		Insights:    insights,
		Exports:     service.NewExportService(engagementRepo, insights, metrics, logr, nil, nil),
	}, nil
}

// Prepare applies the schema and seeds the default admin.
func (a *App) Prepare(ctx context.Context) error {
	if err := database.EnsureSchema(ctx, a.DB); err != nil {
		return err
	}
	return a.Sessions.EnsureDefaultAdmin(ctx, a.Config.Admin.DefaultUsername, a.Config.Admin.DefaultPassword)
}

// Router builds the HTTP surface.
func (a *App) Router() *gin.Engine {
	h := httpserver.Handlers{
		Pages:       handler.NewPageHandler(),
		Auth:        handler.NewAuthHandler(a.Sessions, handler.CookieConfig{Name: a.Config.Session.CookieName, Secure: a.Config.Env == config.EnvProduction}),
		Catalog:     handler.NewCatalogHandler(a.Catalog),
		Engagements: handler.NewEngagementHandler(a.Engagements),
		Insights:    handler.NewInsightsHandler(a.Insights, a.Exports),
		Search:      handler.NewSearchHandler(),
		Health:      handler.NewHealthHandler(a.Metrics, a.DB),
	}
	return httpserver.NewRouter(a.Config, a.Logger, a.Metrics, a.Sessions, h)
}

// Close releases store connections.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
