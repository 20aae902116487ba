// Package middleware provides request governance middleware for the API:
// correlation ids, per-client rate limiting and bearer-token auth.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonesrussell/gosabda/internal/auth"
	"github.com/jonesrussell/gosabda/internal/domain"
	"github.com/jonesrussell/gosabda/internal/logger"
	"github.com/jonesrussell/gosabda/internal/metrics"
	"github.com/jonesrussell/gosabda/internal/ratelimit"
)

// Context keys set by the middleware chain.
const (
	// ContextRequestID holds the request correlation id.
	ContextRequestID = "request_id"
	// ContextAuthenticated marks a request that passed bearer auth.
	ContextAuthenticated = "authenticated"
	// ContextAuthMethod names the authentication method used.
	ContextAuthMethod = "auth_method"
)

// RequestIDHeader carries the correlation id on requests and responses.
const RequestIDHeader = "X-Request-ID"

const bearerPrefix = "Bearer "

// Middleware bundles the governance services the HTTP chain needs.
type Middleware struct {
	limiter ratelimit.Interface
	auth    auth.Interface
	metrics *metrics.Metrics
	logger  logger.Interface
}

// New creates the middleware chain.
func New(limiter ratelimit.Interface, authSvc auth.Interface, mtrcs *metrics.Metrics, log logger.Interface) *Middleware {
	return &Middleware{
		limiter: limiter,
		auth:    authSvc,
		metrics: mtrcs,
		logger:  log,
	}
}

// RequestID assigns a correlation id to every request, honoring one sent
// by the client, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the request's correlation id.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

// RateLimit rejects clients over their sliding-window quota. Rejected
// requests are not counted against the quota.
func (m *Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !m.limiter.Allow(clientIP) {
			m.metrics.IncrementRateLimited()
			m.logger.Warn("Rate limit exceeded", "client_ip", clientIP, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, domain.APIResponse{
				Status:  domain.StatusError,
				Message: "Rate limit exceeded. Please try again later.",
				Metadata: domain.ErrorMetadata{
					ErrorType: domain.ErrTypeRateLimit,
					RequestID: RequestIDFrom(c),
				},
			})
			return
		}
		c.Next()
	}
}

// RequireAuth validates the bearer token and marks the request as
// authenticated. Missing, malformed, expired and forged tokens are all
// rejected the same way.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			m.abortUnauthorized(c, "Authentication required")
			return
		}

		token := strings.TrimPrefix(header, bearerPrefix)
		if _, ok := m.auth.VerifyToken(token); !ok {
			m.abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextAuthenticated, true)
		c.Set(ContextAuthMethod, "jwt")
		c.Next()
	}
}

func (m *Middleware) abortUnauthorized(c *gin.Context, message string) {
	m.logger.Debug("Request rejected", "reason", message, "path", c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusUnauthorized, domain.APIResponse{
		Status:  domain.StatusError,
		Message: message,
		Metadata: domain.ErrorMetadata{
			ErrorType: domain.ErrTypeAuthentication,
			RequestID: RequestIDFrom(c),
		},
	})
}
