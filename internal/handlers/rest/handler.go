package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dnderr "github.com/KirkDiggler/dnd-creation-engine/internal/errors"
	"github.com/KirkDiggler/dnd-creation-engine/internal/services"
)

// Handler serves the creation API
type Handler struct {
	ServiceProvider *services.Provider
	logger          *zap.Logger
}

// HandlerConfig holds configuration for the HTTP handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
	Logger          *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.ServiceProvider == nil {
		panic("service provider is required")
	}

	h := &Handler{
		ServiceProvider: cfg.ServiceProvider,
		logger:          cfg.Logger,
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

// RegisterRoutes mounts the API under /api
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api")

	creation := api.Group("/creation")
	creation.POST("/preview", h.Preview)
	creation.POST("/resolve-choice", h.ResolveChoice)
	creation.POST("/roll-abilities", h.RollAbilities)
	creation.GET("/surface", h.Surface)

	api.GET("/catalog/:kind", h.Catalog)
	api.GET("/debug/feature-tree", h.FeatureTree)
}

type errorResponse struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := dnderr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, errorResponse{Ok: false, Error: err.Error()})
}
