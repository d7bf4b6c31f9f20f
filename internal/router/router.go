package router

import (
	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/middleware"
)

// Options tune the engine around the API routes
type Options struct {
	CORSOrigins []string
	// MediaDir, when set, is served under MediaPath for locally stored images
	MediaDir  string
	MediaPath string
}

// SetupRouter configures the application routes
func SetupRouter(deps *api.Dependencies, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.ErrorHandler(),
		middleware.CORS(opts.CORSOrigins),
	)

	if opts.MediaDir != "" && opts.MediaPath != "" {
		router.Static(opts.MediaPath, opts.MediaDir)
	}

	api.RegisterRoutes(router, deps)
	return router
}
