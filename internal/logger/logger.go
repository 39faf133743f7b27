package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Config holds the configuration of the logger.
type Config struct {
	Level  slog.Level
	Format string
	// Output defaults to os.Stdout.
	Output io.Writer
}

type contextKey string

const (
	// ContextKeyRequestID is the key for request ID in the context.
	ContextKeyRequestID contextKey = "request_id"
	// ContextKeyChatID is the key for chat ID in the context.
	ContextKeyChatID contextKey = "chat_id"
)

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing JSON when Format is "json" and colourised text otherwise.
func New(config Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}

	if config.Format == "json" {
		opts := &slog.HandlerOptions{
			Level: config.Level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.String(a.Key, a.Value.Time().Format(time.RFC3339))
				}
				return a
			},
		}
		return &Logger{Logger: slog.New(slog.NewJSONHandler(out, opts))}
	}

	opts := &tint.Options{
		Level:      config.Level,
		TimeFormat: time.Kitchen,
	}
	return &Logger{Logger: slog.New(tint.NewHandler(out, opts))}
}

// FromConfig maps the LOG_LEVEL / LOG_FORMAT settings to a logger Config.
func FromConfig(logLevel, logFormat, env string) Config {
	config := Config{
		Level:  slog.LevelInfo,
		Format: "text",
	}

	switch logLevel {
	case "debug":
		config.Level = slog.LevelDebug
	case "warn":
		config.Level = slog.LevelWarn
	case "error":
		config.Level = slog.LevelError
	}

	if logFormat != "" {
		config.Format = logFormat
	}
	if env == "production" {
		config.Format = "json"
	}

	return config
}

// WithContext returns a logger carrying the request and chat IDs found in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	logger := l.Logger

	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok && requestID != "" {
		logger = logger.With(slog.String("request_id", requestID))
	}
	// Empty chat IDs are valid, so presence is what matters.
	if chatID, ok := ctx.Value(ContextKeyChatID).(string); ok {
		logger = logger.With(slog.String("chat_id", chatID))
	}

	return &Logger{Logger: logger}
}

// WithComponent creates a new logger with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.With(slog.String("component", component))}
}

// LogError logs an error with additional context.
func (l *Logger) LogError(ctx context.Context, err error, msg string, args ...any) {
	allArgs := append([]any{slog.String("error", err.Error())}, args...)
	l.WithContext(ctx).Error(msg, allArgs...)
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
}
