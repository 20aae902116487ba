package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InitializeViper initializes Viper configuration from environment variables
// and config files. This must be called before Load() to ensure Viper is
// properly configured. A non-empty cfgFile overrides the config search path.
func InitializeViper(cfgFile string) error {
	loadEnvFile()
	setupViper(cfgFile)
	setDefaults()
	readConfigFile()

	if err := bindEnvironmentVariables(); err != nil {
		return fmt.Errorf("failed to bind environment variables: %w", err)
	}

	setupDevelopmentLogging()
	return nil
}

// loadEnvFile loads .env file (ignores error if file doesn't exist).
func loadEnvFile() {
	_ = godotenv.Load()
}

// setupViper configures Viper for environment variable and config file reading.
func setupViper(cfgFile string) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetConfigType("yaml")
	// SetConfigFile must come after SetConfigName, which clears any
	// explicitly set file.
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// readConfigFile reads config file (ignores error if file doesn't exist).
func readConfigFile() {
	_ = viper.ReadInConfig()
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults - production safe
	viper.SetDefault("app", map[string]any{
		"name":        "gosabda",
		"version":     "1.0.0",
		"environment": DefaultEnvironment,
		"debug":       false,
	})

	// Logging defaults - production safe
	viper.SetDefault("logging", map[string]any{
		"level":       DefaultLogLevel,
		"encoding":    DefaultLogEncoding,
		"development": false,
	})

	// Server defaults
	viper.SetDefault("server", map[string]any{
		"host":          DefaultHost,
		"port":          DefaultPort,
		"read_timeout":  DefaultReadTimeout.String(),
		"write_timeout": DefaultWriteTimeout.String(),
		"idle_timeout":  DefaultIdleTimeout.String(),
	})

	// Scraper defaults - polite toward the upstream site
	viper.SetDefault("scraper", map[string]any{
		"delay_min": DefaultScrapeDelayMinSeconds,
		"delay_max": DefaultScrapeDelayMaxSeconds,
		"timeout":   DefaultScrapeTimeoutSeconds,
	})

	// Auth defaults
	viper.SetDefault("auth", map[string]any{
		"secret_key":       "",
		"expiration_hours": DefaultTokenExpirationHours,
	})

	// Registered client keys - development fallbacks
	viper.SetDefault("api", map[string]any{
		"flutter_key": DefaultFlutterAPIKey,
		"mobile_key":  DefaultMobileAPIKey,
	})

	// Cache defaults
	viper.SetDefault("cache", map[string]any{
		"ttl_seconds": DefaultCacheTTLSeconds,
		"max_size":    DefaultCacheMaxSize,
	})

	// Rate limiting defaults
	viper.SetDefault("rate", map[string]any{
		"max_requests_per_minute": DefaultMaxRequestsPerMinute,
	})

	// CORS defaults
	viper.SetDefault("cors", map[string]any{
		"allowed_origins": []string{"*"},
		"allowed_methods": []string{"GET", "POST", "OPTIONS"},
		"allowed_headers": []string{"Content-Type", "Authorization"},
	})
}

// bindEnvironmentVariables binds all environment variables to config keys.
func bindEnvironmentVariables() error {
	if err := bindAppEnvVars(); err != nil {
		return fmt.Errorf("failed to bind app env vars: %w", err)
	}
	if err := bindAuthEnvVars(); err != nil {
		return fmt.Errorf("failed to bind auth env vars: %w", err)
	}
	if err := bindScraperEnvVars(); err != nil {
		return fmt.Errorf("failed to bind scraper env vars: %w", err)
	}
	if err := bindGovernanceEnvVars(); err != nil {
		return fmt.Errorf("failed to bind governance env vars: %w", err)
	}
	return nil
}

// bindAppEnvVars binds application, server and logging environment variables.
func bindAppEnvVars() error {
	if err := viper.BindEnv("app.environment", "APP_ENV"); err != nil {
		return fmt.Errorf("failed to bind APP_ENV: %w", err)
	}
	if err := viper.BindEnv("app.debug", "APP_DEBUG"); err != nil {
		return fmt.Errorf("failed to bind APP_DEBUG: %w", err)
	}
	if err := viper.BindEnv("logging.level", "LOG_LEVEL"); err != nil {
		return fmt.Errorf("failed to bind LOG_LEVEL: %w", err)
	}
	if err := viper.BindEnv("logging.encoding", "LOG_FORMAT"); err != nil {
		return fmt.Errorf("failed to bind LOG_FORMAT: %w", err)
	}
	if err := viper.BindEnv("server.port", "PORT"); err != nil {
		return fmt.Errorf("failed to bind PORT: %w", err)
	}
	if err := viper.BindEnv("cors.allowed_origins", "ALLOWED_ORIGINS"); err != nil {
		return fmt.Errorf("failed to bind ALLOWED_ORIGINS: %w", err)
	}
	return nil
}

// bindAuthEnvVars binds token signing and API key environment variables.
func bindAuthEnvVars() error {
	if err := viper.BindEnv("auth.secret_key", "SECRET_KEY"); err != nil {
		return fmt.Errorf("failed to bind SECRET_KEY: %w", err)
	}
	if err := viper.BindEnv("auth.expiration_hours", "JWT_EXPIRATION_HOURS"); err != nil {
		return fmt.Errorf("failed to bind JWT_EXPIRATION_HOURS: %w", err)
	}
	if err := viper.BindEnv("api.flutter_key", "FLUTTER_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind FLUTTER_API_KEY: %w", err)
	}
	if err := viper.BindEnv("api.mobile_key", "MOBILE_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind MOBILE_API_KEY: %w", err)
	}
	return nil
}

// bindScraperEnvVars binds upstream fetch environment variables.
func bindScraperEnvVars() error {
	if err := viper.BindEnv("scraper.delay_min", "SCRAPE_DELAY_MIN"); err != nil {
		return fmt.Errorf("failed to bind SCRAPE_DELAY_MIN: %w", err)
	}
	if err := viper.BindEnv("scraper.delay_max", "SCRAPE_DELAY_MAX"); err != nil {
		return fmt.Errorf("failed to bind SCRAPE_DELAY_MAX: %w", err)
	}
	if err := viper.BindEnv("scraper.timeout", "SCRAPE_TIMEOUT"); err != nil {
		return fmt.Errorf("failed to bind SCRAPE_TIMEOUT: %w", err)
	}
	return nil
}

// bindGovernanceEnvVars binds cache and rate limiting environment variables.
func bindGovernanceEnvVars() error {
	if err := viper.BindEnv("cache.ttl_seconds", "CACHE_TTL"); err != nil {
		return fmt.Errorf("failed to bind CACHE_TTL: %w", err)
	}
	if err := viper.BindEnv("cache.max_size", "CACHE_MAX_SIZE"); err != nil {
		return fmt.Errorf("failed to bind CACHE_MAX_SIZE: %w", err)
	}
	if err := viper.BindEnv("rate.max_requests_per_minute", "MAX_REQUESTS_PER_MINUTE"); err != nil {
		return fmt.Errorf("failed to bind MAX_REQUESTS_PER_MINUTE: %w", err)
	}
	return nil
}

// setupDevelopmentLogging configures logging settings based on environment
// variables. Debug level is controlled by APP_DEBUG; development formatting
// is controlled by APP_ENV.
func setupDevelopmentLogging() {
	debugFlag := viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	// APP_DEBUG=true enables debug logs in any environment, which allows
	// troubleshooting in production without redeploying.
	if debugFlag {
		viper.Set("logging.level", "debug")
	}

	// Formatting options are separate from log level: debug logs with
	// production formatting are a valid combination.
	if isDev {
		viper.Set("logging.development", true)
		viper.Set("logging.encoding", "console")
	}
}
