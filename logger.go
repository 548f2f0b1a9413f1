package inject

import "log/slog"

// Logger defines the interface for scope lifecycle logging.
// The runtime logs with structured key-value pairs so implementing
// applications can route framework logs through their own logger.
//
// The variadic arguments are key-value pairs:
//
//	logger.Error("Error during preDestroy lifecycle callback", "index", 2, "error", err)
//
// This shape is directly compatible with log/slog and easily adapted to
// logrus, zap and similar structured loggers.
type Logger interface {
	// Info logs an informational message with optional key-value pairs.
	Info(msg string, args ...any)

	// Error logs an error message with optional key-value pairs.
	// Pre-destroy callback failures are reported here.
	Error(msg string, args ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, args ...any)

	// Debug logs detailed diagnostic information, such as lifecycle
	// transitions and skipped conditional registrations.
	Debug(msg string, args ...any)
}

// NewSlogLogger adapts a *slog.Logger to the Logger interface.
func NewSlogLogger(logger *slog.Logger) Logger {
	return &slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

func defaultLogger() Logger {
	return &slogLogger{logger: slog.Default()}
}
