package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillmind/tutor-api/internal/config"
)

func TestSetupLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		logger := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
		require.NotNil(t, logger, "level %q", level)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	t.Parallel()

	base := slog.Default().With("component", "test")
	ctx := WithLogger(context.Background(), base)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, base, got)

	assert.Same(t, base, FromContextOrDefault(ctx, nil))
}

func TestFromContextOrDefaultFallbacks(t *testing.T) {
	t.Parallel()

	def := slog.Default().With("component", "fallback")
	assert.Same(t, def, FromContextOrDefault(context.Background(), def))
	assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
}
