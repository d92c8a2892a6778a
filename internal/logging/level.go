package logging

import "log/slog"

// LevelTrace is more verbose than debug. It is used for per-key change
// notifications.
const LevelTrace = slog.LevelDebug - 4

// LevelFromVerbosity maps the count of -v flags to a level.
// Zero or fewer prints warnings and errors only.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ParseLevel accepts the level names used in the logging settings group
// ("DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL") plus "TRACE".
func ParseLevel(name string) (slog.Level, bool) {
	switch name {
	case "TRACE", "trace":
		return LevelTrace, true
	case "DEBUG", "debug":
		return slog.LevelDebug, true
	case "INFO", "info":
		return slog.LevelInfo, true
	case "WARNING", "WARN", "warning", "warn":
		return slog.LevelWarn, true
	case "ERROR", "error":
		return slog.LevelError, true
	case "CRITICAL", "critical":
		return slog.LevelError + 4, true
	default:
		return slog.LevelInfo, false
	}
}

func levelName(l slog.Level) string {
	if l < slog.LevelDebug {
		return "TRACE"
	}
	return l.String()
}
