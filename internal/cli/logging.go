package cli

import (
	"io"
	"log/slog"
	"strings"
)

// LogLevelEnv selects the log level: debug, info, warn or error.
const LogLevelEnv = "JOURNAL_LOG_LEVEL"

// NewLogger returns a text logger on w. Unknown or empty levels mean error,
// which keeps normal runs quiet.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
