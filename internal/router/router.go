package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "complyhub/docs"
	"complyhub/internal/config"
	"complyhub/internal/domain"
	"complyhub/internal/handler"
	"complyhub/internal/middleware"
	"complyhub/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	startupH *handler.StartupHandler,
	complianceH *handler.ComplianceHandler,
	uploadH *handler.UploadHandler,
	ruleH *handler.RuleHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Startup profiles
	startups := protected.Group("/startups")
	startups.POST("", middleware.RequireRole(domain.RoleAdmin), startupH.Create)
	startups.GET("", middleware.RequireRole(domain.RoleAdmin, domain.RoleCA, domain.RoleCS), startupH.List)
	startups.GET("/:startupID", startupH.Get)
	startups.PUT("/:startupID", middleware.RequireRole(domain.RoleAdmin, domain.RoleStartup), startupH.Update)

	// Compliance checklist
	startups.GET("/:startupID/tasks", complianceH.ListTasks)
	startups.PATCH("/:startupID/tasks/:taskID/status", middleware.RequireRole(domain.RoleAdmin, domain.RoleCA, domain.RoleCS), complianceH.UpdateStatus)
	startups.PATCH("/:startupID/tasks/:taskID/applicability", middleware.RequireRole(domain.RoleAdmin, domain.RoleStartup), complianceH.SetApplicability)
	startups.POST("/:startupID/sync", complianceH.Sync)
	startups.POST("/:startupID/regenerate", middleware.RequireRole(domain.RoleAdmin), complianceH.Regenerate)
	startups.GET("/:startupID/export", complianceH.Export)

	// Evidence uploads
	startups.POST("/:startupID/tasks/:taskID/uploads", middleware.RequireRole(domain.RoleAdmin, domain.RoleStartup), uploadH.Upload)
	startups.GET("/:startupID/tasks/:taskID/uploads", uploadH.List)
	startups.DELETE("/:startupID/uploads/:uploadID", middleware.RequireRole(domain.RoleAdmin, domain.RoleStartup), uploadH.Delete)

	// Rule administration
	rules := protected.Group("/rules")
	rules.POST("", middleware.RequireRole(domain.RoleAdmin), ruleH.Create)
	rules.GET("", ruleH.List)
	rules.GET("/:id", ruleH.Get)
	rules.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), ruleH.Update)
	rules.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), ruleH.Delete)

	// User management
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.Get)
	users.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	return r
}
