// Package server assembles the HTTP service: gin router, CORS, API
// routes, and the optional registration backend.
package server

import (
	"github.com/gin-gonic/gin"

	"github.com/gridbill/gridbill/internal/api"
	"github.com/gridbill/gridbill/internal/auth"
	"github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/store"
)

// Options configure the HTTP server. UsersFile and JWTSecret must both
// be set for registration to be served; without them /register reports
// the service unavailable.
type Options struct {
	UsersFile string
	JWTSecret string
	Debug     bool
}

// Server wires the projection engine and registration behind a gin
// router.
type Server struct {
	router  *gin.Engine
	handler *api.Handler
}

// NewServer builds the server from options.
func NewServer(opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	var users *store.UserStore
	var tokens *auth.TokenIssuer
	if opts.UsersFile != "" && opts.JWTSecret != "" {
		users = store.NewUserStore(opts.UsersFile)
		tokens = auth.NewTokenIssuer(opts.JWTSecret, auth.DefaultTokenTTL)
	}

	s := &Server{
		router:  gin.Default(),
		handler: api.NewHandler(calculation.NewTrajectoryEngine(), users, tokens),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	s.handler.RegisterRoutes(s.router)
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
