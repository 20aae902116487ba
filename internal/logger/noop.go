package logger

// NoOpLogger is a logger that does nothing. It is primarily useful in
// tests that do not care about log output.
type NoOpLogger struct{}

// NewNoOp creates a new no-op logger instance.
func NewNoOp() Interface {
	return &NoOpLogger{}
}

// Debug logs a debug message.
func (l *NoOpLogger) Debug(_ string, _ ...any) {}

// Info logs an info message.
func (l *NoOpLogger) Info(_ string, _ ...any) {}

// Warn logs a warning message.
func (l *NoOpLogger) Warn(_ string, _ ...any) {}

// Error logs an error message.
func (l *NoOpLogger) Error(_ string, _ ...any) {}

// Fatal logs a fatal message and exits.
func (l *NoOpLogger) Fatal(_ string, _ ...any) {}

// With creates a new logger with the given fields.
func (l *NoOpLogger) With(_ ...any) Interface {
	return l
}

var _ Interface = (*NoOpLogger)(nil)
