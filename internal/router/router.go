package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/session"
	"github.com/pageza/recipebox/backend/internal/view"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the router wires together
type Dependencies struct {
	Log                *zap.Logger
	Renderer           view.Renderer
	Sessions           *session.Manager
	AuthHandler        *api.AuthHandler
	RecipeHandler      *api.RecipeHandler
	HealthHandler      *api.HealthHandler
	Metrics            *middleware.Metrics
	CORSAllowedOrigins []string
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Log, "/health", "/metrics"),
	)
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	if len(deps.CORSAllowedOrigins) > 0 {
		router.Use(middleware.CORS(deps.CORSAllowedOrigins))
	}
	router.Use(
		middleware.ErrorHandler(deps.Log, deps.Renderer),
		deps.Sessions.Middleware(),
	)

	// Operational endpoints
	router.GET("/health", deps.HealthHandler.HealthCheck)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	root := router.Group("/")
	root.GET("", api.Home(deps.Renderer))
	deps.AuthHandler.RegisterRoutes(root)
	deps.RecipeHandler.RegisterRoutes(root)

	return router
}
