package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TUTOR_LLM_GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, 2, cfg.Task.WorkerCount)
	assert.Equal(t, 100, cfg.Task.QueueSize)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TUTOR_LLM_GEMINI_API_KEY", "test-key")
	t.Setenv("TUTOR_SERVER_PORT", "9191")
	t.Setenv("TUTOR_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TUTOR_TASK_WORKER_COUNT", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 4, cfg.Task.WorkerCount)
}

func TestLoadValidation(t *testing.T) {
	t.Run("missing API key is allowed", func(t *testing.T) {
		t.Setenv("TUTOR_LLM_GEMINI_API_KEY", "")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.LLM.GeminiAPIKey)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("TUTOR_LLM_GEMINI_API_KEY", "test-key")
		t.Setenv("TUTOR_SERVER_LOG_LEVEL", "verbose")
		_, err := Load()
		assert.ErrorContains(t, err, "validation")
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("TUTOR_LLM_GEMINI_API_KEY", "test-key")
		t.Setenv("TUTOR_SERVER_PORT", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "validation")
	})
}
