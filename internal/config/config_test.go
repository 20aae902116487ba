package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearConfigEnv neutralizes environment variables that would leak into
// tests. Viper treats empty values as unset.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "APP_DEBUG", "LOG_LEVEL", "LOG_FORMAT", "PORT",
		"SECRET_KEY", "JWT_EXPIRATION_HOURS", "FLUTTER_API_KEY", "MOBILE_API_KEY",
		"CACHE_TTL", "CACHE_MAX_SIZE", "MAX_REQUESTS_PER_MINUTE",
		"SCRAPE_DELAY_MIN", "SCRAPE_DELAY_MAX", "SCRAPE_TIMEOUT",
		"ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func loadForTest(t *testing.T) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	require.NoError(t, InitializeViper(""))
	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg := loadForTest(t)

	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.GetAddress())
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, DefaultCacheMaxSize, cfg.Cache.MaxSize)
	assert.Equal(t, DefaultMaxRequestsPerMinute, cfg.Rate.MaxRequestsPerMinute)
	assert.Equal(t, time.Minute, cfg.Rate.Window)
	assert.Equal(t, DefaultSweepInterval, cfg.Rate.SweepInterval)
	assert.Equal(t, time.Second, cfg.Scraper.DelayMin)
	assert.Equal(t, 5*time.Second, cfg.Scraper.DelayMax)
	assert.Equal(t, 15*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenLifetime)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadGeneratesSecretWhenUnset(t *testing.T) {
	clearConfigEnv(t)
	cfg := loadForTest(t)

	assert.True(t, cfg.Auth.SecretGenerated)
	// 32 random bytes, hex encoded.
	assert.Len(t, cfg.Auth.SecretKey, 64)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "8123")
	t.Setenv("SECRET_KEY", "unit-test-secret")
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("MAX_REQUESTS_PER_MINUTE", "5")
	t.Setenv("SCRAPE_DELAY_MIN", "0")
	t.Setenv("SCRAPE_DELAY_MAX", "2")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := loadForTest(t)

	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, "unit-test-secret", cfg.Auth.SecretKey)
	assert.False(t, cfg.Auth.SecretGenerated)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 5, cfg.Rate.MaxRequestsPerMinute)
	assert.Equal(t, time.Duration(0), cfg.Scraper.DelayMin)
	assert.Equal(t, 2*time.Second, cfg.Scraper.DelayMax)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadDevelopmentLogging(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("APP_ENV", "development")

	cfg := loadForTest(t)

	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "console", cfg.Logging.Encoding)
	assert.True(t, cfg.IsDevelopment())
}

func validConfig() *Config {
	cfg := &Config{}
	cfg.App.Environment = "test"
	cfg.Server.Host = DefaultHost
	cfg.Server.Port = DefaultPort
	cfg.Scraper.DelayMinSeconds = 1
	cfg.Scraper.DelayMaxSeconds = 5
	cfg.Scraper.TimeoutSeconds = 15
	cfg.Auth.ExpirationHours = 24
	cfg.Cache.TTLSeconds = 3600
	cfg.Cache.MaxSize = 1000
	cfg.Rate.MaxRequestsPerMinute = 60
	cfg.Logging.Level = "info"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "delay max below min",
			mutate:  func(c *Config) { c.Scraper.DelayMaxSeconds = 0 },
			wantErr: true,
		},
		{
			name:    "negative delay min",
			mutate:  func(c *Config) { c.Scraper.DelayMinSeconds = -1 },
			wantErr: true,
		},
		{
			name:    "zero cache ttl",
			mutate:  func(c *Config) { c.Cache.TTLSeconds = 0 },
			wantErr: true,
		},
		{
			name:    "zero rate quota",
			mutate:  func(c *Config) { c.Rate.MaxRequestsPerMinute = 0 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.App.Environment = "qa" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAPIKeysExcludesBlankedKeys(t *testing.T) {
	cfg := validConfig()
	cfg.API.FlutterKey = "flutter-key"
	cfg.API.MobileKey = ""

	keys := cfg.APIKeys()

	assert.Equal(t, map[string]string{"flutter_app": "flutter-key"}, keys)
}
