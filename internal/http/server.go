// Package http provides the HTTP server, router wiring and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apiTokenDomain "github.com/allisson/vmadmin/internal/apitoken/domain"
	apiTokenHTTP "github.com/allisson/vmadmin/internal/apitoken/http"
	apiTokenUseCase "github.com/allisson/vmadmin/internal/apitoken/usecase"
	catalogHTTP "github.com/allisson/vmadmin/internal/catalog/http"
	"github.com/allisson/vmadmin/internal/config"
	apperrors "github.com/allisson/vmadmin/internal/errors"
	"github.com/allisson/vmadmin/internal/httputil"
	"github.com/allisson/vmadmin/internal/metrics"
	webhookHTTP "github.com/allisson/vmadmin/internal/webhook/http"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers the public catalog route, the operational endpoints and the
// token-protected /v1 API. The context bounds background goroutines owned by middleware.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	tokenHandler *apiTokenHTTP.TokenHandler,
	productHandler *catalogHTTP.ProductHandler,
	webhookConfigHandler *webhookHTTP.ConfigHandler,
	tokenUseCase apiTokenUseCase.TokenUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsProvider.Namespace()))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Public catalog listing consumed by the vending machines.
	router.GET("/get-products", productHandler.ListHandler)

	v1 := router.Group("/v1")

	var rateLimit gin.HandlerFunc
	if cfg.RateLimitEnabled {
		rateLimit = apiTokenHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger)
	}
	protected := func(required apiTokenDomain.Permission) *gin.RouterGroup {
		group := v1.Group("")
		group.Use(apiTokenHTTP.AuthenticationMiddleware(tokenUseCase, required, s.logger))
		if rateLimit != nil {
			group.Use(rateLimit)
		}
		return group
	}

	receive := protected(apiTokenDomain.PermissionWebhookReceive)
	{
		receive.GET("/access", tokenHandler.AccessHandler)
		receive.GET("/products", productHandler.ListHandler)
	}

	admin := protected(apiTokenDomain.PermissionAPIAccess)
	{
		products := admin.Group("/products")
		products.POST("", productHandler.CreateHandler)
		products.PUT("/:id", productHandler.UpdateHandler)
		products.DELETE("/:id", productHandler.DeleteHandler)
		products.POST("/:id/toggle-status", productHandler.ToggleStatusHandler)

		tokens := admin.Group("/tokens")
		tokens.GET("", tokenHandler.ListHandler)
		tokens.POST("", tokenHandler.CreateHandler)
		tokens.POST("/:id/revoke", tokenHandler.RevokeHandler)
		tokens.DELETE("/:id", tokenHandler.DeleteHandler)

		webhookConfig := admin.Group("/webhook-config")
		webhookConfig.GET("", webhookConfigHandler.GetHandler)
		webhookConfig.PUT("", webhookConfigHandler.SaveHandler)
		webhookConfig.POST("/test", webhookConfigHandler.TestHandler)
	}

	// Unknown paths answer 401 to anonymous callers and 404 only once a valid token
	// is presented, so the route table is not discoverable without credentials.
	router.NoRoute(
		apiTokenHTTP.AuthenticationMiddleware(tokenUseCase, "", s.logger),
		func(c *gin.Context) {
			httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrNotFound, "route not found"), s.logger)
		},
	)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
