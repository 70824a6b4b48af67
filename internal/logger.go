package internal

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel maps a configured level name to a slog.Level. Unknown names fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug":
		return slog.LevelDebug
	case "info", "information":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLoggingHandler initializes a slog.Handler based on the provided logging level and format options.
func GetLoggingHandler(level string, json bool) slog.Handler {
	var logLevel = new(slog.LevelVar)
	logLevel.Set(ParseLogLevel(level))

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	// send everything to stderr as suggested in https://www.gnu.org/software/libc/manual/html_node/Standard-Streams.html
	output := os.Stderr

	if json {
		return slog.NewJSONHandler(output, opts)
	}
	return slog.NewTextHandler(output, opts)
}

// SetupLogging initializes the global logger with the given level and format
func SetupLogging(level string, json bool) {
	handler := GetLoggingHandler(level, json)

	logger := slog.New(handler)

	slog.SetDefault(logger)
}
