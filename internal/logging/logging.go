// Package logging configures the structured loggers used across the client.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var structuredLogger *slog.Logger

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

// Trace and fatal are not native slog levels.
var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelFatal: "FATAL",
}

func replaceLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		levelLabel, exists := levelNames[level]
		if !exists {
			levelLabel = level.String()
		}
		a.Value = slog.StringValue(levelLabel)
	}
	return a
}

func newJSONHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelAttr,
	})
}

// Init initializes the logging system with a JSON logger on stdout and sets
// it as the slog default.
func Init(level slog.Level) {
	structuredLogger = slog.New(newJSONHandler(os.Stdout, level))
	slog.SetDefault(structuredLogger)
}

// SetOutput redirects structured logger output, preserving the given level.
// Used by tests to capture log output.
func SetOutput(w io.Writer, level slog.Level) {
	structuredLogger = slog.New(newJSONHandler(w, level))
	slog.SetDefault(structuredLogger)
}

// Structured returns the globally configured structured logger.
// Returns nil if Init() has not been called.
func Structured() *slog.Logger {
	return structuredLogger
}

// ForService creates a new logger instance with the 'service' attribute added.
// It uses the global structured logger as the base.
func ForService(serviceName string) *slog.Logger {
	if structuredLogger == nil {
		return nil
	}
	return structuredLogger.With("service", serviceName)
}

// --- Convenience functions using the default logger ---

// Debug logs a debug message using the default slog logger.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs an info message using the default slog logger.
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a warning message using the default slog logger.
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs an error message using the default slog logger.
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// Fatal logs a fatal message using the custom Fatal level and then exits.
func Fatal(msg string, args ...any) {
	slog.Log(context.TODO(), LevelFatal, msg, args...)
	os.Exit(1)
}

// Trace logs a trace message using the custom Trace level.
func Trace(msg string, args ...any) {
	slog.Log(context.TODO(), LevelTrace, msg, args...)
}

// FileLoggerOptions controls rotation of file loggers.
type FileLoggerOptions struct {
	MaxSizeMB  int // rotate after this many megabytes
	MaxBackups int // rotated files to keep
	MaxAgeDays int // days to keep rotated files
}

// DefaultFileLoggerOptions returns the rotation defaults used when the
// caller passes a zero options value.
func DefaultFileLoggerOptions() FileLoggerOptions {
	return FileLoggerOptions{
		MaxSizeMB:  100,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// newRotatingWriter builds the lumberjack writer for filePath, creating
// the parent directory and filling zero option fields from the defaults.
func newRotatingWriter(filePath string, opts FileLoggerOptions) (*lumberjack.Logger, error) {
	// lumberjack does not create directories
	logDir := filepath.Dir(filePath)
	if logDir != "." {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", logDir, err)
		}
	}

	defaults := DefaultFileLoggerOptions()
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = defaults.MaxSizeMB
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = defaults.MaxBackups
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = defaults.MaxAgeDays
	}

	return &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}, nil
}

// InitFile routes the structured logger to filePath with lumberjack
// rotation in addition to stderr, and sets it as the slog default. It
// returns a close function for the file writer.
func InitFile(filePath string, level slog.Leveler, opts FileLoggerOptions) (func() error, error) {
	logWriter, err := newRotatingWriter(filePath, opts)
	if err != nil {
		return nil, err
	}

	structuredLogger = slog.New(newJSONHandler(io.MultiWriter(os.Stderr, logWriter), level))
	slog.SetDefault(structuredLogger)

	return logWriter.Close, nil
}

// NewFileLogger creates a slog.Logger writing JSON logs to filePath with
// lumberjack rotation. All records carry a 'service' attribute. It returns
// the logger, a close function for the underlying writer, and an error if
// setup fails.
func NewFileLogger(filePath, serviceName string, level slog.Leveler, opts FileLoggerOptions) (*slog.Logger, func() error, error) {
	logWriter, err := newRotatingWriter(filePath, opts)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(newJSONHandler(logWriter, level)).With("service", serviceName)

	return logger, logWriter.Close, nil
}
