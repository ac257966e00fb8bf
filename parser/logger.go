package parser

import (
	"log/slog"
)

// Logger is the interface asyncapitools uses for structured logging.
//
// It is deliberately small and follows the log/slog convention of variadic
// key-value attribute pairs, so adapters for zap, zerolog, or any other
// structured logger are a few lines each:
//
//	logger.Debug("resolved reference", "ref", "#/components/messages/orderCreated", "depth", 2)
//
// Use [NewSlogAdapter] to wrap a standard library *slog.Logger. The default
// when no logger is configured is [NopLogger], which discards everything.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, attrs ...any)

	// Info logs general operational information.
	Info(msg string, attrs ...any)

	// Warn logs potentially harmful situations.
	Warn(msg string, attrs ...any)

	// Error logs error conditions.
	Error(msg string, attrs ...any)

	// With returns a new Logger with the given attributes attached to every log.
	With(attrs ...any) Logger
}

// NopLogger is a no-op logger that discards all output.
// It is the default logger used when no logger is configured.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(_ string, _ ...any) {}

// Info implements Logger.
func (NopLogger) Info(_ string, _ ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(_ string, _ ...any) {}

// Error implements Logger.
func (NopLogger) Error(_ string, _ ...any) {}

// With implements Logger.
func (n NopLogger) With(_ ...any) Logger { return n }

// Ensure NopLogger implements Logger at compile time.
var _ Logger = NopLogger{}

// SlogAdapter wraps a *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter from a *slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements Logger.
func (s *SlogAdapter) Debug(msg string, attrs ...any) {
	s.logger.Debug(msg, attrs...)
}

// Info implements Logger.
func (s *SlogAdapter) Info(msg string, attrs ...any) {
	s.logger.Info(msg, attrs...)
}

// Warn implements Logger.
func (s *SlogAdapter) Warn(msg string, attrs ...any) {
	s.logger.Warn(msg, attrs...)
}

// Error implements Logger.
func (s *SlogAdapter) Error(msg string, attrs ...any) {
	s.logger.Error(msg, attrs...)
}

// With implements Logger.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

// Ensure SlogAdapter implements Logger at compile time.
var _ Logger = (*SlogAdapter)(nil)
