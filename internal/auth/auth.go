// Package auth provides API key validation and signed token issuance.
// Tokens are HS256 JWTs carrying a hash of the issuing API key, never the
// key itself.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonesrussell/gosabda/internal/config"
	"github.com/jonesrussell/gosabda/internal/logger"
)

// ErrInvalidAPIKey is returned when a token is requested for an unknown key.
var ErrInvalidAPIKey = errors.New("invalid API key")

// Claims represents the token claims.
type Claims struct {
	// APIKey is the SHA-256 hex digest of the API key the token was
	// issued for.
	APIKey string `json:"api_key"`
	jwt.RegisteredClaims
}

// Interface defines the token service operations.
type Interface interface {
	// GenerateToken issues a signed token for a registered API key and
	// returns the token with its expiry time.
	GenerateToken(apiKey string) (string, time.Time, error)

	// VerifyToken parses and validates a token. Every failure mode
	// (malformed, bad signature, expired) reports the same absent result.
	VerifyToken(tokenString string) (*Claims, bool)

	// ClientFor returns the registered client name owning the key.
	ClientFor(apiKey string) (string, bool)

	// Lifetime returns the configured token lifetime.
	Lifetime() time.Duration
}

// Service issues and verifies tokens for registered clients.
type Service struct {
	secret   []byte
	lifetime time.Duration
	apiKeys  map[string]string
	logger   logger.Interface
}

// Ensure Service implements Interface
var _ Interface = (*Service)(nil)

// New creates a new token service. apiKeys maps client names to their keys.
func New(cfg *config.AuthConfig, apiKeys map[string]string, log logger.Interface) *Service {
	return &Service{
		secret:   []byte(cfg.SecretKey),
		lifetime: cfg.TokenLifetime,
		apiKeys:  apiKeys,
		logger:   log,
	}
}

// GenerateToken issues a signed token for a registered API key.
func (s *Service) GenerateToken(apiKey string) (string, time.Time, error) {
	if _, ok := s.ClientFor(apiKey); !ok {
		return "", time.Time{}, ErrInvalidAPIKey
	}

	now := time.Now()
	expiresAt := now.Add(s.lifetime)

	claims := &Claims{
		APIKey: hashAPIKey(apiKey),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyToken parses and validates a token. Callers cannot distinguish why
// verification failed; the reason is only logged.
func (s *Service) VerifyToken(tokenString string) (*Claims, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		s.logger.Debug("Token verification failed", "error", err)
		return nil, false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		s.logger.Debug("Token verification failed", "error", "invalid claims")
		return nil, false
	}

	return claims, true
}

// ClientFor returns the registered client name owning the key.
func (s *Service) ClientFor(apiKey string) (string, bool) {
	if apiKey == "" {
		return "", false
	}
	for name, key := range s.apiKeys {
		if apiKey == key {
			return name, true
		}
	}
	return "", false
}

// Lifetime returns the configured token lifetime.
func (s *Service) Lifetime() time.Duration {
	return s.lifetime
}

// hashAPIKey returns the SHA-256 hex digest of an API key.
func hashAPIKey(apiKey string) string {
	digest := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(digest[:])
}
