package rotalog

import (
	"fmt"
	"strings"
)

// LogLevel represents the severity of a log message.
// Higher values indicate more severe log levels.
type LogLevel int32

// Log level constants defining the supported severity levels, ordered
// from least to most severe.
const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
)

// ANSI escape sequences used for colorized console output. One distinct
// color per level; colorReset returns the terminal to its default state
// after the level tag.
const (
	colorReset   = "\033[0m"
	colorCyan    = "\033[36m"
	colorBlue    = "\033[34m"
	colorWhite   = "\033[37m"
	colorYellow  = "\033[33m"
	colorRed     = "\033[31m"
	colorMagenta = "\033[35m"
)

// String returns the upper-case name of the log level.
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// tag returns the fixed-width bracketed form written at the start of
// every log line, e.g. "[INFO ]".
func (l LogLevel) tag() string {
	switch l {
	case TRACE:
		return "[TRACE]"
	case DEBUG:
		return "[DEBUG]"
	case INFO:
		return "[INFO ]"
	case WARN:
		return "[WARN ]"
	case ERROR:
		return "[ERROR]"
	case FATAL:
		return "[FATAL]"
	default:
		return "[?????]"
	}
}

// colorCode returns the ANSI escape for the level.
func (l LogLevel) colorCode() string {
	switch l {
	case TRACE:
		return colorCyan
	case DEBUG:
		return colorBlue
	case INFO:
		return colorWhite
	case WARN:
		return colorYellow
	case ERROR:
		return colorRed
	case FATAL:
		return colorMagenta
	default:
		return colorReset
	}
}

// ParseLogLevel converts a string to its corresponding LogLevel,
// case-insensitively. "WARNING" is accepted as an alias for WARN.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(level) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "FATAL":
		return FATAL, nil
	default:
		return TRACE, fmt.Errorf("invalid log level: %s", level)
	}
}
