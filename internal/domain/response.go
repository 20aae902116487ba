// Package domain provides domain models used across the application.
package domain

import "time"

// Response statuses used in the API envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error type identifiers carried in response metadata.
const (
	ErrTypeValidation     = "ValidationError"
	ErrTypeAuthentication = "AuthenticationError"
	ErrTypeRateLimit      = "RateLimitError"
	ErrTypeRequest        = "RequestException"
	ErrTypeGeneral        = "GeneralException"
)

// APIResponse is the uniform envelope returned by every endpoint.
type APIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Data     any    `json:"data,omitempty"`
	Metadata any    `json:"metadata,omitempty"`
}

// ScrapeMetadata describes where and when devotional content was obtained.
type ScrapeMetadata struct {
	// URL actually fetched (print edition)
	URL string `json:"url"`
	// Canonical edition URL on the source site
	Source string `json:"source"`
	// Time the content was scraped (cache-population time for cached hits)
	ScrapedAt time.Time `json:"scraped_at"`
	// True when the response was served from the content cache
	Cached bool `json:"cached"`
	// Copyright attribution for the source material
	Copyright string `json:"copyright,omitempty"`
	// Set on authenticated endpoints
	Authenticated bool   `json:"authenticated,omitempty"`
	AuthMethod    string `json:"auth_method,omitempty"`
	// Correlation id assigned by the request logging middleware
	RequestID string `json:"request_id,omitempty"`
}

// ErrorMetadata classifies an error response.
type ErrorMetadata struct {
	ErrorType string `json:"error_type"`
	URL       string `json:"url,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// TokenData is the payload of a successful token issuance.
type TokenData struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	// Seconds until the token expires
	ExpiresIn int64 `json:"expires_in"`
}

// TokenMetadata accompanies a successful token issuance.
type TokenMetadata struct {
	Timestamp time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenRequest is the body of POST /api/auth/token.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}
