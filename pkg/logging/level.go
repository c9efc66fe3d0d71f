package logging

import "strings"

// Level is the minimum severity a logger emits.
type Level int

const (
	// DebugLevel covers per-edge search tracing and per-species compiler output
	DebugLevel Level = iota
	// InfoLevel is the default
	InfoLevel
	// WarnLevel reports dropped devices and skipped inputs
	WarnLevel
	// ErrorLevel reports failed runs
	ErrorLevel
)

// String returns the upper-case level name used in log entries
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level. Unknown names map to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}
