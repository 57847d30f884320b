package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/comment-pr/internal/config"
	"github.com/rs/zerolog"
)

const serviceName = "comment-pr"

// New creates a new zerolog logger writing to stdout
func New(cfg config.LogConfig) zerolog.Logger {
	return NewWithWriter(os.Stdout, cfg)
}

// NewWithWriter creates a new zerolog logger with structured output.
// Format "pretty" selects human-readable console output, anything else JSON.
func NewWithWriter(w io.Writer, cfg config.LogConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	level := ParseLevel(cfg.Level)

	if strings.EqualFold(cfg.Format, "pretty") {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			Level(level).
			With().
			Timestamp().
			Caller().
			Str("service", serviceName).
			Logger()
	}

	// JSON output for production
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// ParseLevel maps a configured level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
