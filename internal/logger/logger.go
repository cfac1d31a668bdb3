// Package logger builds the zerolog loggers used across the CLI and server.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level and output style.
type Config struct {
	Level  string
	Pretty bool
}

// New returns a logger writing to w. Pretty output is meant for terminals;
// otherwise one JSON object is written per event.
func New(w io.Writer, cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := w
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	}

	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Timing logs the duration of an operation at debug level when the
// returned function is called.
func Timing(log zerolog.Logger, operation string) func() {
	start := time.Now()
	return func() {
		log.Debug().
			Str("operation", operation).
			Dur("took", time.Since(start)).
			Msg("completed")
	}
}
