package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// -----------------------------------------------------------------------------

// Logger provides named, printf-style logging on top of zap
type Logger struct {
	name  string
	sugar *zap.SugaredLogger
}

// -----------------------------------------------------------------------------

// Options selects the level and sinks of the root zap logger.
type Options struct {
	Level       string   // debug, info, warn, error
	OutputPaths []string // defaults to stdout
}

// -----------------------------------------------------------------------------

// NewLogger creates a named Logger. A nil base falls back to the global zap
// logger, which is a no-op until Init has run.
func NewLogger(base *zap.Logger, name string) *Logger {
	if base == nil {
		base = zap.L()
	}
	return &Logger{
		name:  name,
		sugar: base.Named(name).Sugar(),
	}
}

// -----------------------------------------------------------------------------

// Init builds the root zap logger and installs it as the global one.
func Init(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(opts.Level))
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	cfg.Sampling = nil

	cfg.OutputPaths = []string{"stdout"}
	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = opts.OutputPaths
	}
	cfg.ErrorOutputPaths = []string{"stderr"}

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(base)
	return base, nil
}

// -----------------------------------------------------------------------------

// ParseLevel maps a config string to a zap level. Unknown values mean info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// -----------------------------------------------------------------------------

// With returns a child logger carrying structured key/value context.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{name: l.name, sugar: l.sugar.With(keysAndValues...)}
}

// -----------------------------------------------------------------------------

// Named returns a child logger whose name is suffixed with name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{name: l.name + "." + name, sugar: l.sugar.Named(name)}
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
	_ = l.sugar.Sync()
	os.Exit(1)
}

// -----------------------------------------------------------------------------

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
