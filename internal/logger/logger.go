// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Config selects level, format and destination. Empty fields fall back to
// LOG_LEVEL, LOG_FORMAT and LOG_FILE.
type Config struct {
	Level  string
	Format string
	File   string
	// Fallback is used when no file is configured. Defaults to stderr.
	Fallback io.Writer
}

// Init initializes the global slog logger and returns the logger it installed.
// When a log file cannot be opened the fallback writer is used instead.
func Init(cfg Config) *slog.Logger {
	level := cfg.Level
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	format := cfg.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	logFile := cfg.File
	if logFile == "" {
		logFile = os.Getenv("LOG_FILE")
	}

	var w io.Writer = os.Stderr
	if cfg.Fallback != nil {
		w = cfg.Fallback
	}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			slog.Error("failed to create log directory, using fallback output", "file", logFile, "error", err)
		} else {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				slog.Error("failed to open log file, using fallback output", "file", logFile, "error", err)
			} else {
				w = f
			}
		}
	}

	l := slog.New(newHandler(w, format, parseLevel(level)))
	slog.SetDefault(l)
	return l
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewRequestLogger creates a logger tagged with a unique requestId for one
// generation request.
func NewRequestLogger() *slog.Logger {
	return slog.With("requestId", uuid.Must(uuid.NewV7()).String())
}
