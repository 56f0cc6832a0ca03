// Package logging provides structured logging functionality.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides structured logging capabilities.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new logger with the specified level writing to stderr.
func NewLogger(level string) *Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a new logger with the specified level writing to w.
func NewLoggerWithWriter(level string, w io.Writer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return NewLoggerWithWriter("error", io.Discard)
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithTool returns a logger with tool information.
func (l *Logger) WithTool(toolName string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("tool", toolName)),
	}
}

// WithRoot returns a logger tagged with the Markdown root being indexed.
func (l *Logger) WithRoot(root string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("root", root)),
	}
}
