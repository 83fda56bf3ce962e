// Package api exposes the projection engine, reference catalogs, and
// registration over HTTP.
package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/gridbill/gridbill/internal/auth"
	"github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/config"
	"github.com/gridbill/gridbill/internal/store"
)

// Handler carries the shared state behind all routes.
type Handler struct {
	engine *calculation.TrajectoryEngine
	parser *config.InputParser
	users  *store.UserStore
	tokens *auth.TokenIssuer

	mu    sync.Mutex
	cache map[string]*TrajectoryResponse
	group singleflight.Group
}

// NewHandler creates the API handler. users and tokens may be nil when
// registration is not served.
func NewHandler(engine *calculation.TrajectoryEngine, users *store.UserStore, tokens *auth.TokenIssuer) *Handler {
	return &Handler{
		engine: engine,
		parser: config.NewInputParser(),
		users:  users,
		tokens: tokens,
		cache:  make(map[string]*TrajectoryResponse),
	}
}

// RegisterRoutes mounts all routes on the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/status", h.GetStatus)
		api.GET("/scenarios", h.ListScenarios)
		api.GET("/profiles", h.ListProfiles)
		api.GET("/profiles/:id", h.GetProfile)
		api.GET("/tariffs", h.ListTariffs)
		api.GET("/tariffs/:id", h.GetTariff)
		api.GET("/heatmap", h.GetHeatmap)
		api.POST("/trajectories", h.PostTrajectories)
	}
	router.POST("/register", h.Register)
}
