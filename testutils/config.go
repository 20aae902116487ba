// Package testutils provides shared testing utilities across the application.
package testutils

import (
	"time"

	"github.com/jonesrussell/gosabda/internal/config"
)

// TestConfig returns a configuration suitable for tests: no scrape
// delays, a generous rate quota and sweep intervals long enough to stay
// out of the way. Tests override individual fields as needed.
func TestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "gosabda",
			Version:     "test",
			Environment: "test",
		},
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         5000,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Scraper: config.ScraperConfig{
			Timeout: 5 * time.Second,
		},
		Auth: config.AuthConfig{
			SecretKey:     "test-secret",
			TokenLifetime: 24 * time.Hour,
		},
		Cache: config.CacheConfig{
			TTL:           time.Hour,
			MaxSize:       16,
			SweepInterval: time.Hour,
		},
		Rate: config.RateConfig{
			MaxRequestsPerMinute: 100,
			Window:               time.Minute,
			SweepInterval:        time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		},
	}
}
