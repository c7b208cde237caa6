// Package logger provides a context-aware structured logger built on zap.
// Library packages log through Get(ctx) so callers can attach fields once and
// have them carried through a whole preprocessing run or CLI command.
package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment selects a human-readable console logger.
	DevelopmentEnvironment = "development"
	// ProductionEnvironment selects a JSON logger.
	ProductionEnvironment = "production"
)

// defaultLogger is used when no logger is found in the context.
var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// Setup builds the default logger for the given environment and level.
// An empty level keeps the environment default (debug for development,
// info for production).
func Setup(environment, level string) error {
	var cfg zap.Config
	if environment == ProductionEnvironment {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("could not build logger: %w", err)
	}
	defaultLogger = l

	return nil
}

// Sync flushes the default logger.
func Sync() {
	_ = defaultLogger.Sync()
}

type key struct{}

// Get retrieves the logger stored in ctx, or the default logger.
func Get(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, _ := ctx.Value(key{}).(*zap.Logger); l != nil {
			return l
		}
	}

	return defaultLogger
}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, l)
}

// WithFields returns a context whose logger includes fields.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// Debug logs at debug level.
func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

// Info logs at info level.
func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

// Warn logs at warn level.
func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

// Error logs at error level.
func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}
