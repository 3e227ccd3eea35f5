package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger zerolog.Logger

// Config holds logger settings
type Config struct {
	Level      string
	JSON       bool
	File       string
	MaxSize    int // megabytes
	MaxBackups int

	// Output overrides the default stderr writer (used in tests)
	Output io.Writer
}

// Initialize sets up the logger with the given configuration
func Initialize(cfg Config) {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	// Set up console writer for pretty output if not JSON
	if !cfg.JSON {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	if cfg.File != "" {
		if f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			// lumberjack opens the file itself, this is only a writability check
			f.Close()
			maxSize := cfg.MaxSize
			if maxSize <= 0 {
				maxSize = 10
			}
			rotating := &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    maxSize,
				MaxBackups: cfg.MaxBackups,
			}
			output = zerolog.MultiLevelWriter(output, rotating)
		}
	}

	logger = zerolog.New(output).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug logs a debug message
func Debug(msg string) {
	logger.Debug().Msg(msg)
}

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	logger.Debug().Msgf(format, args...)
}

// Info logs an info message
func Info(msg string) {
	logger.Info().Msg(msg)
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	logger.Info().Msgf(format, args...)
}

// Warn logs a warning message
func Warn(msg string) {
	logger.Warn().Msg(msg)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warn().Msgf(format, args...)
}

// Error logs an error message
func Error(msg string) {
	logger.Error().Msg(msg)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Error().Msgf(format, args...)
}

// ErrorErr logs an error with an error object
func ErrorErr(msg string, err error) {
	logger.Error().Err(err).Msg(msg)
}

// WarnErr logs a warning with an error object
func WarnErr(msg string, err error) {
	logger.Warn().Err(err).Msg(msg)
}

// WithNamespace returns a logger with namespace context
func WithNamespace(namespace, prefix string) *zerolog.Logger {
	l := logger.With().
		Str("namespace", namespace).
		Str("prefix", prefix).
		Logger()
	return &l
}

// WithFields returns a logger carrying arbitrary fields
func WithFields(fields map[string]interface{}) *zerolog.Logger {
	l := logger.With().Fields(fields).Logger()
	return &l
}
