package logging

import (
	"log/slog"
	"os"
	"strings"
)

func NewLogger(level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}

// ForInvocation tags a child logger with the id that correlates all log lines
// of one trigger execution.
func ForInvocation(logger *slog.Logger, id string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With("invocation", id)
}
