package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("AI_API_KEY", "test-key")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
		assert.Equal(t, "deepseek-chat", cfg.AI.Model)
		assert.Equal(t, 7*24*time.Hour, cfg.Cache.DailyTTL)
		assert.Equal(t, time.Hour, cfg.Cache.FallbackTTL)
		assert.Equal(t, 60, cfg.RateLimit.Max)
		assert.Equal(t, time.Minute, cfg.RateLimit.Window)
		assert.False(t, cfg.Prewarm.Enabled)
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("AI_API_KEY", "test-key")
		t.Setenv("PORT", "9999")
		t.Setenv("RATE_LIMIT_MAX", "5")
		t.Setenv("FALLBACK_TTL_SECONDS", "120")
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9999", cfg.Server.Port)
		assert.Equal(t, 5, cfg.RateLimit.Max)
		assert.Equal(t, 2*time.Minute, cfg.Cache.FallbackTTL)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	})

	t.Run("requires an AI API key", func(t *testing.T) {
		t.Setenv("AI_API_KEY", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects a non-positive rate limit", func(t *testing.T) {
		t.Setenv("AI_API_KEY", "test-key")
		t.Setenv("RATE_LIMIT_MAX", "0")

		_, err := Load()
		assert.Error(t, err)
	})
}
