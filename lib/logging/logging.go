package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// ParseLevel maps debug, info, warn and error to zerolog levels. Anything
// else is info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// NewLogger writes JSON lines to stdout tagged with component.
func NewLogger(level, component string) zerolog.Logger {
	return New(os.Stdout, level, component)
}

func New(w io.Writer, level, component string) zerolog.Logger {
	return zerolog.New(w).With().
		Timestamp().
		Str("component", component).
		Logger().
		Level(ParseLevel(level))
}

func Nop() zerolog.Logger {
	return zerolog.Nop()
}
