package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		logger, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("development config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Level = "debug"
		cfg.Development = true
		logger, err := New(cfg)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(Config{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "brdbfs.log")
		logger, err := New(Config{Level: "info", OutputPaths: []string{path}})
		require.NoError(t, err)
		logger.Info("hello")
		require.NoError(t, logger.Sync())
		assert.FileExists(t, path)
	})
}

func TestNewNop(t *testing.T) {
	assert.False(t, NewNop().Core().Enabled(zapcore.ErrorLevel))
}

func TestWith(t *testing.T) {
	child := NewNop().With(zap.String("run_id", "abc"))
	require.NotNil(t, child)
	assert.IsType(t, &Logger{}, child)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil).Logger)
	assert.NotNil(t, OrNop(&Logger{}).Logger)

	l := NewNop()
	assert.Same(t, l, OrNop(l))
}
