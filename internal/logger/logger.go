// Package logger owns the process-wide zerolog logger. The terminal belongs
// to the animation, so output only ever goes to a file or is discarded.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var Logger = zerolog.Nop()

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// ParseLevel maps a level name to a zerolog level. Empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch LogLevel(strings.ToLower(s)) {
	case LevelDebug:
		return zerolog.DebugLevel, nil
	case LevelInfo, "":
		return zerolog.InfoLevel, nil
	case LevelWarn:
		return zerolog.WarnLevel, nil
	case LevelError:
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("logger: unknown level %q", s)
}

// Configure points the global logger at w. A nil writer disables logging.
func Configure(level string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if w == nil {
		Logger = zerolog.Nop()
		return nil
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	Logger = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return nil
}

// Open appends to the log file at path and configures the global logger.
// An empty path disables logging. The returned closer is never nil.
func Open(path, level string) (io.Closer, error) {
	if path == "" {
		return nopCloser{}, Configure(level, nil)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nopCloser{}, fmt.Errorf("logger: open %s: %w", path, err)
	}
	if err := Configure(level, f); err != nil {
		f.Close()
		return nopCloser{}, err
	}
	return f, nil
}

// With returns a child of the global logger tagged with a component name.
func With(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
