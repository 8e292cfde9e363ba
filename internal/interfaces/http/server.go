// internal/interfaces/http/server.go
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/resteel-cart/internal/config"
	"github.com/your-org/resteel-cart/internal/domain/cart"
	"github.com/your-org/resteel-cart/internal/interfaces/http/handlers"
	"github.com/your-org/resteel-cart/internal/interfaces/http/middleware"
	"github.com/your-org/resteel-cart/internal/interfaces/http/routes"
	"github.com/your-org/resteel-cart/internal/pkg/session"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the HTTP server wires into handlers.
// DB and Redis may be nil when the deployment does not use them.
type Dependencies struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Sessions *cart.Sessions
	Catalog  handlers.CatalogReader
	Quotes   handlers.QuoteGenerator
}

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	log        logrus.FieldLogger
	deps       Dependencies
	gin        *gin.Engine
	httpServer *http.Server
	startedAt  time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, logger logrus.FieldLogger, deps Dependencies) *Server {
	s := &Server{
		config:    cfg,
		log:       logger,
		deps:      deps,
		startedAt: time.Now(),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s.gin = gin.New()
	if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		logger.WithError(err).Warn("Ignoring invalid TRUSTED_PROXIES")
	}
	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.log.WithField("port", s.config.Server.Port).Info("🚀 HTTP Server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.log.Info("🛑 Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("✅ HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.log))
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders())
	s.gin.Use(middleware.RateLimit(s.config, s.deps.Redis, s.log))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)

	apiV1 := s.gin.Group("/api/v1")

	catalogHandler := handlers.NewCatalogHandler(s.deps.Catalog, s.log)
	routes.SetupCatalogRoutes(apiV1, catalogHandler)

	sessionGroup := apiV1.Group("")
	sessionGroup.Use(middleware.CartSession(s.config, session.NewManager(s.config), s.log))

	cartHandler := handlers.NewCartHandler(s.deps.Sessions, s.deps.Catalog, s.deps.Quotes, s.log)
	routes.SetupCartRoutes(sessionGroup, cartHandler)
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	if s.deps.DB != nil {
		sqlDB, err := s.deps.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database ping failed",
			})
			return
		}
	}

	if s.deps.Redis != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		if err := s.deps.Redis.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "redis ping failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck handles readiness check requests
func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ready",
		"timestamp":     time.Now().UTC(),
		"uptime":        time.Since(s.startedAt).String(),
		"cart_sessions": s.deps.Sessions.Len(),
	})
}
