// Package logging builds the application's zap logger and bridges it into
// the Wails runtime logger.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cdtdelta/stockdbms/internal/config"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a zap logger for the given settings. Console format uses the
// development encoder; json uses the production one.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "", "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}

	return zc.Build()
}

// WailsLogger adapts a zap logger to the Wails logger.Logger interface so
// framework messages land in the same sink as ours.
type WailsLogger struct {
	log *zap.Logger
}

var _ logger.Logger = (*WailsLogger)(nil)

// NewWailsLogger wraps l, tagging every entry with component=wails.
func NewWailsLogger(l *zap.Logger) *WailsLogger {
	return &WailsLogger{log: l.WithOptions(zap.AddCallerSkip(1)).With(zap.String("component", "wails"))}
}

func (w *WailsLogger) Print(message string)   { w.log.Info(message) }
func (w *WailsLogger) Trace(message string)   { w.log.Debug(message) }
func (w *WailsLogger) Debug(message string)   { w.log.Debug(message) }
func (w *WailsLogger) Info(message string)    { w.log.Info(message) }
func (w *WailsLogger) Warning(message string) { w.log.Warn(message) }
func (w *WailsLogger) Error(message string)   { w.log.Error(message) }

// Fatal logs at error level. Wails decides itself whether to exit.
func (w *WailsLogger) Fatal(message string) { w.log.Error(message, zap.Bool("fatal", true)) }

// WailsLevel maps a zap level name to the Wails log level.
func WailsLevel(level string) logger.LogLevel {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return logger.INFO
	}
	switch {
	case l <= zapcore.DebugLevel:
		return logger.DEBUG
	case l == zapcore.InfoLevel:
		return logger.INFO
	case l == zapcore.WarnLevel:
		return logger.WARNING
	default:
		return logger.ERROR
	}
}
