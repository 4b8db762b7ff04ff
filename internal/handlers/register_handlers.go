package handlers

import (
	"net/http"

	"github.com/SscSPs/gl_backoffice/cmd/docs"
	portssvc "github.com/SscSPs/gl_backoffice/internal/core/ports/services"
	"github.com/SscSPs/gl_backoffice/internal/dto"
	"github.com/SscSPs/gl_backoffice/internal/middleware"
	"github.com/SscSPs/gl_backoffice/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// rateLimiter may be nil to disable rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, rateLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// RegisterValidators installs the custom binding tags on gin's validator engine.
func RegisterValidators() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return dto.RegisterValidators(v)
	}
	return nil
}

// setupAPIV1Routes configures the /api/v1 group. Every ledger route is scoped to one tenant.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	if rateLimiter != nil {
		v1.Use(middleware.RateLimit(rateLimiter))
	}

	tenant := v1.Group("/tenants/:tenant_id", middleware.TenantScope())
	RegisterTenantRoutes(tenant, services)
}

// RegisterTenantRoutes registers every tenant scoped route on rg.
func RegisterTenantRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	registerAccountRoutes(rg, services.AccountsMap)
	registerPeriodRoutes(rg, services.Period)
	registerSequenceRoutes(rg, services.Sequence)
	registerPostingRoutes(rg, services.Posting)
	registerJournalRoutes(rg, services.Journal, services.Reversal)
	registerReportingRoutes(rg, services.Reconciler)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
