package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourlovestory/story-gateway/internal/services"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, 2, cfg.FallbackAttempts)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PROVIDER_TIMEOUT", "30s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "30s", cfg.ProviderTimeout.String())
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel(), tt.level)
	}
}

func TestLoadCredentials(t *testing.T) {
	environ := []string{
		"GROQ_API_KEY=gsk_one",
		"GROQ_API_KEY_2=gsk_two",
		"GEMINI_API_KEY=AIzaOne",
		"GEMINI_API_KEY_BACKUP=AIzaTwo",
		"GROQ_API_KEY_EMPTY=",
		"PATH=/usr/bin",
		"NOT_A_KEY=value",
	}

	creds := LoadCredentials(environ)

	require.Len(t, creds, 4)
	byProvider := make(map[string][]string)
	for _, c := range creds {
		byProvider[c.Provider] = append(byProvider[c.Provider], c.Key)
	}
	assert.ElementsMatch(t, []string{"gsk_one", "gsk_two"}, byProvider[services.ProviderGroq])
	assert.ElementsMatch(t, []string{"AIzaOne", "AIzaTwo"}, byProvider[services.ProviderGemini])
}

func TestLoadCredentialsEmptyEnviron(t *testing.T) {
	assert.Empty(t, LoadCredentials(nil))
}
