// Package logging provides structured logging for the library using
// slog. The library logs at debug level only; nothing is emitted on
// success paths above that.
//
// By default logs go to stderr as JSON at the level named by the
// GITDIT_LOG_LEVEL environment variable (off unless set). Embedders
// may install their own logger with SetLogger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogLevelEnvVar controls the default logger's level.
const LogLevelEnvVar = "GITDIT_LOG_LEVEL"

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// SetLogger installs a logger for the library. Passing nil restores
// the default.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// getLogger returns the installed logger, building the environment
// driven default on first use.
func getLogger() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = newDefaultLogger(os.Stderr)
	}
	return logger
}

func newDefaultLogger(w io.Writer) *slog.Logger {
	levelStr := os.Getenv(LogLevelEnvVar)
	if levelStr == "" {
		// Silent unless asked for.
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	opts := &slog.HandlerOptions{Level: parseLevel(levelStr)}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs at DEBUG level.
func Debug(msg string, attrs ...any) {
	getLogger().Debug(msg, attrs...)
}

// Info logs at INFO level.
func Info(msg string, attrs ...any) {
	getLogger().Info(msg, attrs...)
}

// Warn logs at WARN level.
func Warn(msg string, attrs ...any) {
	getLogger().Warn(msg, attrs...)
}

// Error logs at ERROR level.
func Error(msg string, attrs ...any) {
	getLogger().Error(msg, attrs...)
}
