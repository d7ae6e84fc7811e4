package contract

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLogLevel maps a level name to a zerolog level. An empty name means info.
func ParseLogLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	return lvl, nil
}

// NewLogger builds the process logger. The console format is meant for terminals,
// anything else writes one JSON object per line.
func NewLogger(level, format string, w io.Writer) zerolog.Logger {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if format == LogFormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
