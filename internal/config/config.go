// Package config loads service configuration and provider credentials from
// the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/yourlovestory/story-gateway/internal/services"
)

// Config is the service configuration.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	RedisURL string `envconfig:"REDIS_URL" default:"localhost:6379"`

	ProviderTimeout  time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"60s"`
	RetryDelay       time.Duration `envconfig:"RETRY_DELAY" default:"1s"`
	FallbackAttempts int           `envconfig:"FALLBACK_ATTEMPTS" default:"2"`

	// TokenIssuer is the expected issuer of sync identity tokens.
	TokenIssuer string `envconfig:"TOKEN_ISSUER" default:"https://accounts.google.com"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// SlogLevel maps the configured log level string onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Environment variable prefixes scanned for provider keys. Several keys per
// provider are supported, like GROQ_API_KEY, GROQ_API_KEY_2, GROQ_API_KEY_3.
var credentialPrefixes = []struct {
	prefix   string
	provider string
}{
	{"GROQ_API_KEY", services.ProviderGroq},
	{"GEMINI_API_KEY", services.ProviderGemini},
}

// LoadCredentials scans environ (as returned by os.Environ) for provider
// API keys. Empty values are skipped.
func LoadCredentials(environ []string) []services.Credential {
	var creds []services.Credential
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || value == "" {
			continue
		}
		for _, cp := range credentialPrefixes {
			if strings.HasPrefix(name, cp.prefix) {
				creds = append(creds, services.Credential{Provider: cp.provider, Key: value})
				break
			}
		}
	}
	return creds
}
