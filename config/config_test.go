package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "postpass")
	t.Setenv("DB_NAME", "mealcoach")
	t.Setenv("JWT_SECRET", "a-test-secret-0123456789")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadConfig(t *testing.T) {
	t.Run("loads with defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "disable", cfg.DBSSLMode)
		assert.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.OpenAIAPIURL)
		assert.Equal(t, "out", cfg.DebugDir)
		assert.Zero(t, cfg.RedisDB)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("REDIS_DB", "3")
		t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.ServerPort)
		assert.Equal(t, 3, cfg.RedisDB)
		assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	})

	t.Run("missing required value fails", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("short jwt secret fails", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "too-short")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("invalid redis db fails", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REDIS_DB", "not-a-number")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
