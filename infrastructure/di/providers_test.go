package di

import (
	"testing"

	"eventlens-backend/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestProvideLogLevel(t *testing.T) {
	level, err := ProvideLogLevel(&config.Config{LogLevel: "warn"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level.Level())

	_, err = ProvideLogLevel(&config.Config{LogLevel: "shouting"})
	assert.Error(t, err)

	// Empty falls back to the environment default.
	level, err = ProvideLogLevel(&config.Config{Environment: "production"})
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, level.Level())
}

func TestLoggerFollowsAtomicLevel(t *testing.T) {
	cfg := &config.Config{Environment: "production", LogLevel: "info"}
	level, err := ProvideLogLevel(cfg)
	require.NoError(t, err)

	logger, err := ProvideLogger(cfg, level)
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	// Runtime level changes take effect on the already-built logger.
	level.SetLevel(zapcore.DebugLevel)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
