package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/config"
	"github.com/ajayabd17/she-help-srm-safe/internal/transport/http/handlers"
	"github.com/ajayabd17/she-help-srm-safe/internal/transport/http/middleware"
	"github.com/ajayabd17/she-help-srm-safe/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Accounts *usecase.AccountService
	Sessions *usecase.SessionService
	Reports  *usecase.ReportService
	SOS      *usecase.SOSService
	Safety   *usecase.SafetyService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config    *config.AppConfig
	Logger    *zap.Logger
	Services  ServiceSet
	Directory port.AccountDirectory
	Storage   StorageChecker
}

// StorageChecker exposes readiness behaviour for storage backends.
type StorageChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))

	if metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{}); err != nil {
		deps.Logger.Warn("http metrics disabled", zap.Error(err))
	} else {
		r.Use(metrics.Handler())
	}

	sessionMiddleware := middleware.RequireSession(deps.Services.Sessions)
	adminMiddleware := middleware.RequireAdmin()

	healthOptions := make([]handlers.HealthOption, 0, 1)
	if deps.Storage != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("storage", deps.Storage.HealthCheck))
	}
	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(deps.Services.Accounts, deps.Services.Sessions)
		authHandler.RegisterRoutes(api.Group("/auth"), sessionMiddleware)

		handlers.NewResourcesHandler().RegisterRoutes(api)

		profileGroup := api.Group("/profile")
		profileGroup.Use(sessionMiddleware)
		handlers.NewProfileHandler(deps.Services.Accounts).RegisterRoutes(profileGroup)

		dashboardGroup := api.Group("/dashboard")
		dashboardGroup.Use(sessionMiddleware)
		handlers.NewDashboardHandler(deps.Services.Reports, deps.Services.SOS, deps.Services.Safety).RegisterRoutes(dashboardGroup)

		reportHandler := handlers.NewReportHandler(deps.Services.Reports)
		reportGroup := api.Group("/complaints")
		reportGroup.Use(sessionMiddleware)
		reportHandler.RegisterRoutes(reportGroup)

		alertHandler := handlers.NewAlertHandler(deps.Services.SOS, deps.Directory)
		sosGroup := api.Group("/sos")
		sosGroup.Use(sessionMiddleware)
		alertHandler.RegisterRoutes(sosGroup)

		safetyHandler := handlers.NewSafetyHandler(deps.Services.Safety)
		safetyGroup := api.Group("/safety-status")
		safetyGroup.Use(sessionMiddleware)
		safetyHandler.RegisterRoutes(safetyGroup)

		adminGroup := api.Group("/admin")
		adminGroup.Use(sessionMiddleware, adminMiddleware)
		reportHandler.RegisterAdminRoutes(adminGroup.Group("/complaints"))
		alertHandler.RegisterAdminRoutes(adminGroup.Group("/alerts"))
		safetyHandler.RegisterAdminRoutes(adminGroup.Group("/safety-status"))
	}

	return r
}
