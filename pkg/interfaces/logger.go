package interfaces

import "context"

// Logger defines the leveled logging contract expected by the engine.
// It matches the surface exposed by github.com/goliatone/go-logger so host
// applications can plug that package in without writing adapters.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider exposes named loggers. Implementations can hand back the
// same instance for every name or scope children per module.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields. Providers supporting it should return a new logger that emits the
// supplied fields with every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
