package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/marking-day/internal/config"
	"github.com/stemsi/marking-day/internal/handler"
	"github.com/stemsi/marking-day/internal/middleware"
	"github.com/stemsi/marking-day/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Simulation *handler.SimulationHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// limiter may be nil to disable rate limiting.
func SetupRouter(handlers *Handlers, limiter *middleware.RateLimiter, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Simulation API (stateless, token-carried state) ───────────────
	simAPI := router.Group("/api/v1/simulations")
	simAPI.Use(middleware.NoStore(), middleware.StateToken())
	if limiter != nil {
		simAPI.Use(limiter.Middleware())
	}
	{
		simAPI.POST("", handlers.Simulation.StartSimulation)
		simAPI.POST("/step", handlers.Simulation.StepSimulation)
		simAPI.POST("/finish", handlers.Simulation.FinishSimulation)
	}

	// ─── WebSocket (one simulation per connection) ─────────────────────
	wsGroup := router.Group("/ws/v1")
	if limiter != nil {
		wsGroup.Use(limiter.Middleware())
	}
	{
		wsGroup.GET("/simulations/stream", handlers.WS.SimulationStream)
	}

	return router
}
