package api

import (
	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/service"
)

// Dependencies are the services the HTTP layer talks to
type Dependencies struct {
	Store       *repository.Store
	Auth        service.IAuthService
	Recipes     service.IRecipeService
	Relations   service.IRelationService
	Shopping    service.IShoppingListService
	Reference   service.IReferenceService
	RateLimiter *middleware.RateLimiter
	PageSize    int
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps *Dependencies) {
	health := NewHealthHandler(deps.Store)
	router.GET("/health", health.Check)
	router.GET("/api/health", health.Check)
	router.GET("/metrics", middleware.MetricsHandler())

	v1 := router.Group("/api")
	NewAuthHandler(deps.Auth).RegisterRoutes(v1)
	NewReferenceHandler(deps.Reference, deps.Auth).RegisterRoutes(v1)
	NewRecipeHandler(deps).RegisterRoutes(v1)
}
