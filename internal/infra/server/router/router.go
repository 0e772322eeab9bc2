// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/controller"
	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	emissionController *controller.EmissionController
	activityController *controller.ActivityController
	offsetController   *controller.OffsetController
	writeRateLimiter   *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
	httpMetrics        *middleware.HTTPMetrics
	metricsHandler     http.Handler
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	emissionController *controller.EmissionController,
	activityController *controller.ActivityController,
	offsetController *controller.OffsetController,
	writeRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	httpMetrics *middleware.HTTPMetrics,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController:   healthController,
		emissionController: emissionController,
		activityController: activityController,
		offsetController:   offsetController,
		writeRateLimiter:   writeRateLimiter,
		authMiddleware:     authMiddleware,
		httpMetrics:        httpMetrics,
		metricsHandler:     metricsHandler,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	if r.httpMetrics != nil {
		r.engine.Use(r.httpMetrics.Middleware())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and scrape endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	if r.metricsHandler != nil {
		r.engine.GET("/metrics", gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the main API routes. Every API route is scoped to the
// organization carried by the access token.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		emissions := v1.Group("/emissions")
		{
			emissions.GET("/rollup", r.emissionController.Rollup)
		}

		v1.GET("/emission-factors", r.emissionController.ListFactors)

		activities := v1.Group("/activities")
		{
			activities.GET("", r.activityController.List)
			activities.POST("", r.writeRateLimiter.Middleware(), r.activityController.Create)
			activities.DELETE("/:id", r.writeRateLimiter.Middleware(), r.activityController.Delete)
		}

		offsets := v1.Group("/offsets")
		{
			offsets.GET("", r.offsetController.List)
			offsets.POST("", r.writeRateLimiter.Middleware(), r.offsetController.Create)
		}
	}
}
