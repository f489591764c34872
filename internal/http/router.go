// README: HTTP router registration (Gin engine, CORS, middleware, routes).
package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"tripgen/internal/http/handlers"
	"tripgen/internal/http/middleware"
)

type RouterDeps struct {
	Plan           *handlers.PlanHandler
	Debug          bool
	AllowedOrigins []string

	// Redis enables the shared rate limiter when non-nil.
	Redis             *redis.Client
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if !deps.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Signature", "Timestamp", "Nonce", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	api.Use(middleware.WxSignature(deps.Debug))
	if deps.Redis != nil {
		api.Use(middleware.RateLimit(deps.Redis, deps.RateLimitRequests, deps.RateLimitWindow))
	}
	api.POST("/generate-plan", deps.Plan.Generate)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
