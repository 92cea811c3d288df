package httpserver

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/citizen-portal/api/swagger"
	"github.com/noah-isme/citizen-portal/internal/handler"
	"github.com/noah-isme/citizen-portal/internal/middleware"
	"github.com/noah-isme/citizen-portal/internal/service"
	"github.com/noah-isme/citizen-portal/pkg/config"
	"github.com/noah-isme/citizen-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/citizen-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/citizen-portal/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Pages       *handler.PageHandler
	Auth        *handler.AuthHandler
	Catalog     *handler.CatalogHandler
	Engagements *handler.EngagementHandler
	Insights    *handler.InsightsHandler
	Search      *handler.SearchHandler
	Health      *handler.HealthHandler
}

// NewRouter mounts the portal routes. Admin routes sit behind the session gate.
func NewRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, sessions middleware.SessionResolver, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(middleware.Metrics(metrics))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	requireAdmin := middleware.RequireAdmin(sessions, cfg.Session.CookieName)

	r.GET("/", h.Pages.Index)
	r.GET("/admin", middleware.OptionalAdmin(sessions, cfg.Session.CookieName), h.Pages.Admin)
	r.GET("/admin/login", h.Pages.Login)
	r.POST("/admin/login", h.Auth.Login)
	r.GET("/admin/manage", requireAdmin, h.Pages.Manage)

	api := r.Group("/api")
	api.GET("/services", h.Catalog.List)
	api.GET("/service/:id", h.Catalog.Get)
	api.POST("/engagement", h.Engagements.Log)
	api.POST("/ai/search", h.Search.Search)

	admin := api.Group("/admin", requireAdmin)
	admin.POST("/logout", h.Auth.Logout)
	admin.GET("/insights", h.Insights.Insights)
	admin.GET("/engagements", h.Engagements.Recent)
	admin.GET("/export_csv", h.Insights.ExportCSV)
	admin.GET("/export_insights_pdf", h.Insights.ExportInsightsPDF)
	admin.GET("/services", h.Catalog.List)
	admin.POST("/services", h.Catalog.Upsert)
	admin.DELETE("/services/:id", h.Catalog.Delete)

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	r.GET("/metrics", h.Health.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
