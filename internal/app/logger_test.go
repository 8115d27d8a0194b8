package app

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerHonorsConfiguredLevel(t *testing.T) {
	ctx := context.Background()

	logger := NewLogger(&Config{LogFormat: "json", LogLevel: "warn"})
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))

	logger = NewLogger(&Config{LogLevel: "debug"})
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	logger := NewLogger(&Config{LogLevel: "chatty"})
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
