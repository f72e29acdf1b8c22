package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/denisAlshanov/vidgrab/internal/api/handlers"
	"github.com/denisAlshanov/vidgrab/internal/api/middleware"
	"github.com/denisAlshanov/vidgrab/internal/config"
	"github.com/denisAlshanov/vidgrab/internal/metrics"
	"github.com/denisAlshanov/vidgrab/internal/services/auth"
	"github.com/denisAlshanov/vidgrab/internal/services/session"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
}

type Handlers struct {
	UI      *handlers.UIHandler
	Options *handlers.OptionsHandler
	Video   *handlers.VideoHandler
	Session *handlers.SessionHandler
	Health  *handlers.HealthHandler
}

func NewRouter(cfg *config.Config, store *session.Store, tokens *auth.TokenService, h Handlers) *Router {
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())
	engine.Use(middleware.MetricsMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Operational endpoints (no session)
	ops := engine.Group("/")
	{
		ops.GET("/health", h.Health.Health)
		ops.GET("/ready", h.Health.Readiness)
		ops.GET("/live", h.Health.Liveness)
		ops.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	sessions := middleware.SessionMiddleware(store, tokens, &cfg.Session)

	engine.GET("/", h.UI.Index)

	api := engine.Group("/api/v1")
	{
		api.GET("/options", h.Options.GetOptions)

		// The limiter runs before the session middleware so rejected
		// requests never create a session
		limited := api.Group("/video")
		limited.Use(middleware.RateLimitMiddleware(&cfg.API), sessions)
		{
			limited.POST("/info", h.Video.GetInfo)      // /api/v1/video/info
			limited.POST("/download", h.Video.Download) // /api/v1/video/download
		}

		stateful := api.Group("")
		stateful.Use(sessions)
		{
			stateful.GET("/session", h.Session.GetSession)
			stateful.DELETE("/session/cache", h.Session.ClearCache)

			stateful.GET("/video/file", h.Video.GetFile)                   // /api/v1/video/file
			stateful.GET("/video/progress", h.Video.GetProgress)           // /api/v1/video/progress
			stateful.GET("/video/progress/stream", h.Video.StreamProgress) // /api/v1/video/progress/stream
		}
	}

	return &Router{
		engine: engine,
		config: cfg,
	}
}

// Server returns an http.Server for the router. WriteTimeout is left unset
// because downloads and progress streams are long-lived.
func (r *Router) Server() *http.Server {
	return &http.Server{
		Addr:              r.config.Server.Host + ":" + r.config.Server.Port,
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
