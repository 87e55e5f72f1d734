package bootstrap

import (
	"context"
	"log/slog"
	"testing"

	"github.com/init-pkg/sheet-loader/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	debug := NewLogger(&config.Config{Log: config.LogConfig{Level: "debug", Format: "text"}})
	assert.True(t, debug.Enabled(context.Background(), slog.LevelDebug))

	fallback := NewLogger(&config.Config{Log: config.LogConfig{Level: "loud"}})
	assert.False(t, fallback.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, fallback.Enabled(context.Background(), slog.LevelInfo))

	quiet := NewLogger(&config.Config{Log: config.LogConfig{Level: "warn"}})
	assert.False(t, quiet.Enabled(context.Background(), slog.LevelInfo))
}
