// Package log provides the structured logging interface used by pcart.
//
// The interface is slog-compatible so the backend can be swapped; the default
// backend is zerolog (see zerolog.go). Engines obtain a named logger with
// GetLoggerWithName and attach search context with With:
//
//	logger := log.GetLoggerWithName("cart.optimize").With(
//	    log.ResponseKey, response.Name(),
//	    log.PredictorsKey, len(predictors),
//	)
//	logger.Info("Search finished", log.TotalScoreKey, result.TotalScore())

package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key/value pairs. If the first field passed to Error
// is an error value it is attached as the error of the record, including the
// stack trace recorded by cockroachdb/errors when one is present.
type Logger interface {
	// Debug logs detailed diagnostic information, such as per-candidate
	// progress of a search.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs potentially problematic situations that do not stop a search.
	Warn(msg string, fields ...any)

	// Error logs error conditions.
	//
	// Example:
	//   logger.Error("Search failed", err, log.OperationKey, log.OperationOptimize)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider defines an interface for creating and configuring loggers.
// SetProvider installs one globally, which is how tests capture output.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
