package neat

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace is a slog level below Debug, used for per-step phenotype dumps.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a level name ("info", "debug", "trace", "warn", "error") to a slog.Level.
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled text logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))

// Log returns the logger attached to the configuration, or a logger that
// discards everything when none is set.
func (c *Config) Log() *slog.Logger {
	if c == nil || c.Logger == nil {
		return discardLogger
	}
	return c.Logger
}
