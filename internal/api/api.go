// Package api implements the HTTP API for the devotional service.
package api

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gosabda/internal/api/middleware"
	"github.com/jonesrussell/gosabda/internal/config"
	"github.com/jonesrussell/gosabda/internal/domain"
	"github.com/jonesrussell/gosabda/internal/logger"
)

const readHeaderTimeout = 10 * time.Second // Timeout for reading headers

// SetupRouter creates and configures the Gin router with all routes
func SetupRouter(
	cfg *config.Config,
	log logger.Interface,
	h *Handler,
	m *middleware.Middleware,
) *gin.Engine {
	// Disable Gin's default logging
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.CustomRecovery(recoveryHandler))
	router.Use(middleware.RequestID())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(&cfg.CORS))

	// Public routes
	router.GET("/", h.Root)
	router.GET("/api/health", h.Health)

	// Token issuance is rate limited but requires no bearer token
	router.POST("/api/auth/token", m.RateLimit(), h.Token)

	// Protected routes
	protected := router.Group("/api")
	protected.Use(m.RateLimit(), m.RequireAuth())
	protected.GET("/sabda", h.Sabda)

	return router
}

// recoveryHandler renders recovered panics through the uniform envelope
// instead of Gin's bare 500.
func recoveryHandler(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, domain.APIResponse{
		Status:  domain.StatusError,
		Message: "Internal server error",
		Metadata: domain.ErrorMetadata{
			ErrorType: domain.ErrTypeGeneral,
			RequestID: middleware.RequestIDFrom(c),
		},
	})
}

// loggingMiddleware creates a middleware that logs HTTP requests
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", statusCode,
			"latency", latency,
			"client_ip", c.ClientIP(),
			"request_id", middleware.RequestIDFrom(c),
		)
	}
}

// corsMiddleware adds CORS headers from the configured allowlists. An
// origin absent from the allowlist gets no Allow-Origin header at all.
func corsMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	allowAll := slices.Contains(cfg.AllowedOrigins, "*")
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(cfg.AllowedOrigins, origin):
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", methods)
		c.Writer.Header().Set("Access-Control-Allow-Headers", headers)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// StartHTTPServer builds the HTTP server around the configured router.
// The caller owns ListenAndServe and shutdown.
func StartHTTPServer(
	cfg *config.Config,
	log logger.Interface,
	h *Handler,
	m *middleware.Middleware,
) *http.Server {
	router := SetupRouter(cfg, log, h, m)

	return &http.Server{
		Addr:              cfg.GetAddress(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
