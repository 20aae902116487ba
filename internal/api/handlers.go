package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gosabda/internal/api/middleware"
	"github.com/jonesrussell/gosabda/internal/auth"
	"github.com/jonesrussell/gosabda/internal/cache"
	"github.com/jonesrussell/gosabda/internal/config"
	"github.com/jonesrussell/gosabda/internal/domain"
	"github.com/jonesrussell/gosabda/internal/logger"
	"github.com/jonesrussell/gosabda/internal/metrics"
	"github.com/jonesrussell/gosabda/internal/scraper"
)

// Handler carries the dependencies shared by the HTTP handlers.
type Handler struct {
	cfg     *config.Config
	logger  logger.Interface
	scraper scraper.Interface
	cache   cache.Interface
	auth    auth.Interface
	metrics *metrics.Metrics
}

// NewHandler creates the handler set for the API routes.
func NewHandler(
	cfg *config.Config,
	log logger.Interface,
	scraperSvc scraper.Interface,
	contentCache cache.Interface,
	authSvc auth.Interface,
	mtrcs *metrics.Metrics,
) *Handler {
	return &Handler{
		cfg:     cfg,
		logger:  log,
		scraper: scraperSvc,
		cache:   contentCache,
		auth:    authSvc,
		metrics: mtrcs,
	}
}

// Token handles POST /api/auth/token
func (h *Handler) Token(c *gin.Context) {
	var req domain.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.APIKey == "" {
		respondError(c, http.StatusBadRequest, "API key is required", domain.ErrTypeValidation)
		return
	}

	token, expiresAt, err := h.auth.GenerateToken(req.APIKey)
	if err != nil {
		h.logger.Warn("Token request with invalid API key", "client_ip", c.ClientIP())
		respondError(c, http.StatusUnauthorized, "Invalid API key", domain.ErrTypeAuthentication)
		return
	}

	h.metrics.IncrementTokensIssued()

	client, _ := h.auth.ClientFor(req.APIKey)
	h.logger.Info("Token issued", "client", client, "expires_at", expiresAt)

	respond(c, http.StatusOK, "Token generated successfully",
		domain.TokenData{
			Token:     token,
			TokenType: "Bearer",
			ExpiresIn: int64(h.auth.Lifetime().Seconds()),
		},
		domain.TokenMetadata{
			Timestamp: time.Now().UTC(),
			ExpiresAt: expiresAt,
		})
}

// Sabda handles GET /api/sabda
func (h *Handler) Sabda(c *gin.Context) {
	year, msg := parseYear(c.Query("year"))
	if msg != "" {
		respondError(c, http.StatusBadRequest, msg, domain.ErrTypeValidation)
		return
	}

	date, msg := parseDate(c.Query("date"))
	if msg != "" {
		respondError(c, http.StatusBadRequest, msg, domain.ErrTypeValidation)
		return
	}

	key := cache.Key(year, date)
	if content, storedAt, ok := h.cache.Get(key); ok {
		h.metrics.IncrementCacheHit()
		h.logger.Debug("Serving devotional from cache", "key", key)
		respond(c, http.StatusOK, "Content retrieved from cache",
			content, h.scrapeMetadata(c, year, date, scraper.PrintURL(year, date), storedAt, true))
		return
	}

	h.metrics.IncrementCacheMiss()

	content, sourceURL, err := h.scraper.Scrape(c.Request.Context(), year, date)
	if err != nil {
		h.metrics.RecordScrape(false)
		h.logger.Error("Scrape failed", "year", year, "date", date, "error", err)
		respondError(c, http.StatusInternalServerError,
			"Failed to retrieve devotional content", domain.ErrTypeRequest)
		return
	}

	h.metrics.RecordScrape(true)
	h.cache.Set(key, *content)

	respond(c, http.StatusOK, "Content retrieved successfully",
		content, h.scrapeMetadata(c, year, date, sourceURL, time.Now().UTC(), false))
}

// Health handles GET /api/health
func (h *Handler) Health(c *gin.Context) {
	respond(c, http.StatusOK, "Service is healthy", gin.H{
		"service":        h.cfg.App.Name,
		"version":        h.cfg.App.Version,
		"environment":    h.cfg.App.Environment,
		"uptime_seconds": int64(h.metrics.Uptime().Seconds()),
		"cache_entries":  h.cache.Size(),
		"stats":          h.metrics.Snapshot(),
	}, nil)
}

// Root handles GET /
func (h *Handler) Root(c *gin.Context) {
	respond(c, http.StatusOK, "SABDA Devotional API", gin.H{
		"service":     h.cfg.App.Name,
		"version":     h.cfg.App.Version,
		"description": "Serves the Santapan Harian daily devotional from SABDA.org as JSON.",
		"endpoints": gin.H{
			"POST /api/auth/token": "Exchange an API key for a bearer token",
			"GET /api/sabda":       "Devotional for ?year=YYYY&date=MMDD (bearer token required)",
			"GET /api/health":      "Liveness, uptime and scrape statistics",
		},
		"authentication": "Request a token, then send Authorization: Bearer <token>",
	}, nil)
}

// scrapeMetadata assembles the metadata block for devotional responses.
func (h *Handler) scrapeMetadata(
	c *gin.Context,
	year int,
	date string,
	sourceURL string,
	scrapedAt time.Time,
	cached bool,
) domain.ScrapeMetadata {
	return domain.ScrapeMetadata{
		URL:           sourceURL,
		Source:        scraper.CanonicalURL(year, date),
		ScrapedAt:     scrapedAt,
		Cached:        cached,
		Copyright:     copyrightLine(),
		Authenticated: c.GetBool(middleware.ContextAuthenticated),
		AuthMethod:    c.GetString(middleware.ContextAuthMethod),
		RequestID:     middleware.RequestIDFrom(c),
	}
}
