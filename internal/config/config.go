// Package config provides configuration management for the gosabda service.
// It handles loading, validation, and access to configuration values from
// environment variables and an optional YAML file via Viper.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	// App holds application identity configuration
	App AppConfig `mapstructure:"app"`
	// Server holds HTTP server configuration
	Server ServerConfig `mapstructure:"server"`
	// Scraper holds upstream fetch configuration
	Scraper ScraperConfig `mapstructure:"scraper"`
	// Auth holds token signing configuration
	Auth AuthConfig `mapstructure:"auth"`
	// API holds the client API key registry
	API APIConfig `mapstructure:"api"`
	// Cache holds content cache configuration
	Cache CacheConfig `mapstructure:"cache"`
	// Rate holds rate limiting configuration
	Rate RateConfig `mapstructure:"rate"`
	// CORS holds cross-origin configuration
	CORS CORSConfig `mapstructure:"cors"`
	// Logging holds logger configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// AppConfig represents application identity configuration.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// ScraperConfig represents upstream fetch configuration. The delay and
// timeout knobs are configured in whole seconds to match the deployment
// environment variables; the derived durations are computed at load time.
type ScraperConfig struct {
	DelayMinSeconds int `mapstructure:"delay_min"`
	DelayMaxSeconds int `mapstructure:"delay_max"`
	TimeoutSeconds  int `mapstructure:"timeout"`

	DelayMin time.Duration `mapstructure:"-"`
	DelayMax time.Duration `mapstructure:"-"`
	Timeout  time.Duration `mapstructure:"-"`
}

// AuthConfig represents token signing configuration.
type AuthConfig struct {
	SecretKey       string `mapstructure:"secret_key"`
	ExpirationHours int    `mapstructure:"expiration_hours"`

	TokenLifetime time.Duration `mapstructure:"-"`
	// SecretGenerated reports whether the signing secret was generated at
	// startup because none was configured. Issued tokens do not survive a
	// restart in that case.
	SecretGenerated bool `mapstructure:"-"`
}

// APIConfig represents the registered client API keys.
type APIConfig struct {
	FlutterKey string `mapstructure:"flutter_key"`
	MobileKey  string `mapstructure:"mobile_key"`
}

// CacheConfig represents content cache configuration.
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
	MaxSize    int `mapstructure:"max_size"`

	TTL           time.Duration `mapstructure:"-"`
	SweepInterval time.Duration `mapstructure:"-"`
}

// RateConfig represents rate limiting configuration.
type RateConfig struct {
	MaxRequestsPerMinute int `mapstructure:"max_requests_per_minute"`

	Window        time.Duration `mapstructure:"-"`
	SweepInterval time.Duration `mapstructure:"-"`
}

// CORSConfig represents cross-origin configuration.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// LoggingConfig represents logger configuration.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
	Development bool   `mapstructure:"development"`
}

// Load unmarshals the Viper state into a Config, computes derived fields
// and validates the result. InitializeViper must have been called first.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParseFailed, err)
	}

	computeDerived(&cfg)

	if cfg.Auth.SecretKey == "" {
		secret, err := generateSecretKey()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigLoadFailed, err)
		}
		cfg.Auth.SecretKey = secret
		cfg.Auth.SecretGenerated = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// computeDerived fills in duration fields derived from the integer knobs.
func computeDerived(cfg *Config) {
	cfg.Scraper.DelayMin = time.Duration(cfg.Scraper.DelayMinSeconds) * time.Second
	cfg.Scraper.DelayMax = time.Duration(cfg.Scraper.DelayMaxSeconds) * time.Second
	cfg.Scraper.Timeout = time.Duration(cfg.Scraper.TimeoutSeconds) * time.Second

	cfg.Auth.TokenLifetime = time.Duration(cfg.Auth.ExpirationHours) * time.Hour

	cfg.Cache.TTL = time.Duration(cfg.Cache.TTLSeconds) * time.Second
	cfg.Cache.SweepInterval = DefaultSweepInterval

	cfg.Rate.Window = DefaultRateWindow
	cfg.Rate.SweepInterval = DefaultSweepInterval

	cfg.CORS.AllowedOrigins = normalizeList(cfg.CORS.AllowedOrigins)
	cfg.CORS.AllowedMethods = normalizeList(cfg.CORS.AllowedMethods)
	cfg.CORS.AllowedHeaders = normalizeList(cfg.CORS.AllowedHeaders)
}

// normalizeList trims whitespace around entries and drops empty ones.
// Viper's decode hook splits comma-separated environment values but leaves
// the surrounding whitespace in place.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ValidationError{Field: "server.port", Value: c.Server.Port, Reason: "must be between 1 and 65535"}
	}
	if c.Scraper.DelayMinSeconds < 0 {
		return &ValidationError{Field: "scraper.delay_min", Value: c.Scraper.DelayMinSeconds, Reason: "must not be negative"}
	}
	if c.Scraper.DelayMaxSeconds < c.Scraper.DelayMinSeconds {
		return &ValidationError{
			Field:  "scraper.delay_max",
			Value:  c.Scraper.DelayMaxSeconds,
			Reason: "must not be less than scraper.delay_min",
		}
	}
	if c.Scraper.TimeoutSeconds <= 0 {
		return &ValidationError{Field: "scraper.timeout", Value: c.Scraper.TimeoutSeconds, Reason: "must be positive"}
	}
	if c.Auth.ExpirationHours <= 0 {
		return &ValidationError{Field: "auth.expiration_hours", Value: c.Auth.ExpirationHours, Reason: "must be positive"}
	}
	if c.Cache.TTLSeconds <= 0 {
		return &ValidationError{Field: "cache.ttl_seconds", Value: c.Cache.TTLSeconds, Reason: "must be positive"}
	}
	if c.Cache.MaxSize <= 0 {
		return &ValidationError{Field: "cache.max_size", Value: c.Cache.MaxSize, Reason: "must be positive"}
	}
	if c.Rate.MaxRequestsPerMinute <= 0 {
		return &ValidationError{
			Field:  "rate.max_requests_per_minute",
			Value:  c.Rate.MaxRequestsPerMinute,
			Reason: "must be positive",
		}
	}
	if !ValidLogLevels[c.Logging.Level] {
		return &ValidationError{Field: "logging.level", Value: c.Logging.Level, Reason: "must be one of debug, info, warn, error"}
	}
	if !ValidEnvironments[c.App.Environment] {
		return &ValidationError{
			Field:  "app.environment",
			Value:  c.App.Environment,
			Reason: "must be one of development, staging, production, test",
		}
	}
	return nil
}

// GetAddress returns the host:port the HTTP server binds to.
func (c *Config) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// APIKeys returns the registered client keys by client name. Empty keys
// are excluded so an explicitly blanked key cannot authenticate.
func (c *Config) APIKeys() map[string]string {
	keys := make(map[string]string, 2)
	if c.API.FlutterKey != "" {
		keys["flutter_app"] = c.API.FlutterKey
	}
	if c.API.MobileKey != "" {
		keys["mobile_app"] = c.API.MobileKey
	}
	return keys
}

// IsDevelopment reports whether the application runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// generateSecretKey produces a random hex-encoded signing secret.
func generateSecretKey() (string, error) {
	buf := make([]byte, secretKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
