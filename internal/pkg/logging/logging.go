// Package logging builds the process logger. Components derive their own
// logger with a "component" attribute:
//
//	logger := logging.NewLogger(os.Stdout, "INFO", "json")
//	jobLogger := logging.Component(logger, "stranded_conversion_job")
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps DEBUG, INFO, WARN and ERROR to a slog level. Anything else,
// including an empty string, is INFO.
func ParseLevel(raw string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger writes JSON unless format is "text". Source positions are added
// at DEBUG level.
func NewLogger(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

func Component(logger *slog.Logger, name string) *slog.Logger {
	return logger.With("component", name)
}
