// Package config provides configuration management for the gosabda service.
package config

import "time"

// ValidLogLevels defines the valid logging levels.
var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidEnvironments defines the valid environment types.
var ValidEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
	"test":        true,
}

// Default configuration values
const (
	// DefaultHost is the default server bind host.
	DefaultHost = "0.0.0.0"

	// DefaultPort is the default server port.
	DefaultPort = 5000

	// DefaultReadTimeout is the default HTTP server read timeout.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the default HTTP server write timeout.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the default HTTP server idle timeout.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultTokenExpirationHours is the default token lifetime in hours.
	DefaultTokenExpirationHours = 24

	// DefaultCacheTTLSeconds is the default content cache TTL in seconds.
	DefaultCacheTTLSeconds = 3600

	// DefaultCacheMaxSize is the default maximum number of cache entries.
	DefaultCacheMaxSize = 1000

	// DefaultMaxRequestsPerMinute is the default per-client request quota.
	DefaultMaxRequestsPerMinute = 60

	// DefaultRateWindow is the sliding window the request quota applies to.
	DefaultRateWindow = time.Minute

	// DefaultSweepInterval is the default interval for cache and limiter
	// background cleanup.
	DefaultSweepInterval = 5 * time.Minute

	// DefaultScrapeDelayMinSeconds is the default lower bound of the
	// randomized pre-request delay in seconds.
	DefaultScrapeDelayMinSeconds = 1

	// DefaultScrapeDelayMaxSeconds is the default upper bound of the
	// randomized pre-request delay in seconds.
	DefaultScrapeDelayMaxSeconds = 5

	// DefaultScrapeTimeoutSeconds is the default scrape request timeout in seconds.
	DefaultScrapeTimeoutSeconds = 15

	// DefaultFlutterAPIKey is the development fallback key for the Flutter client.
	DefaultFlutterAPIKey = "sabda_flutter_2025_secure_key"

	// DefaultMobileAPIKey is the development fallback key for the mobile client.
	DefaultMobileAPIKey = "sabda_mobile_2025_secure_key"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultLogEncoding is the default logging encoding.
	DefaultLogEncoding = "json"

	// DefaultEnvironment is the default application environment.
	DefaultEnvironment = "production"

	// secretKeyBytes is the length of a generated signing secret before hex encoding.
	secretKeyBytes = 32
)
