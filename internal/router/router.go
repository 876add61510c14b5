package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/recipe-discovery/backend/internal/api"
	"github.com/pageza/recipe-discovery/backend/internal/middleware"
	"github.com/pageza/recipe-discovery/backend/internal/store"
)

// SetupRouter configures the application routes
func SetupRouter(
	recipeHandler *api.RecipeHandler,
	llmHandler *api.LLMHandler,
	recipes *store.Store,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.New()

	// Request id first so every later middleware can log it
	router.Use(
		middleware.RequestID(),
		middleware.Metrics(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(allowedOrigins),
	)
	router.NoRoute(middleware.NotFound())

	router.GET("/health", api.HealthCheck(recipes))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	recipeHandler.RegisterRoutes(router)
	llmHandler.RegisterRoutes(router)

	return router
}
