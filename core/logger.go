package core

import (
	"log/slog"
	"os"
)

// Logger is the structured logging facade handed to every component.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	WithComponent(name string) Logger
}

type Field struct {
	Key   string
	Value any
}

type slogLogger struct {
	logger *slog.Logger
}

// newDefaultLogger selects a handler from GO_ENV: JSON at info level for
// production, near-silent text for tests, debug text otherwise.
func newDefaultLogger() Logger {
	var handler slog.Handler
	switch os.Getenv("GO_ENV") {
	case "production":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	case "test":
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelError,
		})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return &slogLogger{logger: slog.New(handler)}
}

func (l *slogLogger) Info(msg string, fields ...Field)  { l.logger.Info(msg, attrs(fields)...) }
func (l *slogLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, attrs(fields)...) }
func (l *slogLogger) Warn(msg string, fields ...Field)  { l.logger.Warn(msg, attrs(fields)...) }
func (l *slogLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, attrs(fields)...) }

func (l *slogLogger) WithComponent(name string) Logger {
	return &slogLogger{logger: l.logger.With("component", name)}
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}
