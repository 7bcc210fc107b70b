package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cdtdelta/stockdbms/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(config.LogConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(config.LogConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNewInvalid(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	l, err := New(config.LogConfig{Level: "info", Format: "json", File: path})
	require.NoError(t, err)
	l.Info("stock added", zap.String("symbol", "AAPL"))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"symbol":"AAPL"`)
}

func TestWailsLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := NewWailsLogger(zap.New(core))

	w.Info("started")
	w.Warning("slow")
	w.Fatal("boom")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "wails", entries[0].ContextMap()["component"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, true, entries[2].ContextMap()["fatal"])
}

func TestWailsLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, WailsLevel("debug"))
	assert.Equal(t, logger.INFO, WailsLevel("info"))
	assert.Equal(t, logger.WARNING, WailsLevel("warn"))
	assert.Equal(t, logger.ERROR, WailsLevel("error"))
	assert.Equal(t, logger.INFO, WailsLevel("nonsense"))
}
