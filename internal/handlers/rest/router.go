package rest

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-creation-engine/internal/uuid"
)

var defaultOrigins = []string{"http://localhost:3000"}

// RouterConfig assembles the gin engine
type RouterConfig struct {
	Handler        *Handler
	Logger         *zap.Logger
	AllowedOrigins []string

	// Metrics exposes /metrics and per-route HTTP metrics
	Metrics bool

	// RequestIDs defaults to random UUIDs
	RequestIDs uuid.Generator
}

// NewRouter builds the HTTP router with logging, recovery, CORS, health and
// optional Prometheus middleware
func NewRouter(cfg *RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(ZapLogger(logger, cfg.RequestIDs))
	router.Use(Recovery(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = defaultOrigins
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	if cfg.Metrics {
		p := ginprometheus.NewPrometheus("gin")
		p.Use(router)
	}

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/health", health)
	router.HEAD("/health", health)

	cfg.Handler.RegisterRoutes(router)

	return router
}
