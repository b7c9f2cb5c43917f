// Package log is the service's structured JSON logger. Email addresses
// logged under the "email" key are masked.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	// CorrelatedIDKey holds the request correlation id in a context and
	// names the matching log attribute.
	CorrelatedIDKey contextKey = "correlation_id"
	// LoggerKeyForContext holds the request-scoped *Logger.
	LoggerKeyForContext contextKey = "logger"
)

const emailKey = "email"

type Logger struct {
	*slog.Logger
}

// FromEnv logs to w at the level named by LOG_LEVEL.
func FromEnv(w io.Writer) *Logger {
	return NewLogger(w, LevelFromString(os.Getenv("LOG_LEVEL")))
}

func NewLogger(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: maskEmails,
	})
	return &Logger{Logger: slog.New(handler)}
}

// LevelFromString maps LOG_LEVEL values; anything unrecognised is info.
func LevelFromString(s string) slog.Level {
	var level slog.Level
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "warning":
		return slog.LevelWarn
	default:
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return slog.LevelInfo
		}
		return level
	}
}

func maskEmails(_ []string, a slog.Attr) slog.Attr {
	if a.Key == emailKey && a.Value.Kind() == slog.KindString {
		return slog.String(emailKey, MaskEmail(a.Value.String()))
	}
	return a
}

// MaskEmail keeps the first character of the local part and the domain:
// "ada@example.com" becomes "a***@example.com".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return "***"
	}
	return local[:1] + "***@" + domain
}

func (l *Logger) WithCorrelationID(ctx context.Context) *Logger {
	return &Logger{Logger: l.With(string(CorrelatedIDKey), GetOrGenerateCorrelationID(ctx))}
}

func GetOrGenerateCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelatedIDKey).(string); ok && id != "" {
		return id
	}
	return GenerateCorrelationID()
}

func GenerateCorrelationID() string {
	return uuid.NewString()
}

// GetLoggerInstanceFromContext prefers the request logger injected by the
// router, then fallbackLogger tagged with the context's correlation id.
func GetLoggerInstanceFromContext(ctx context.Context, fallbackLogger *Logger) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(LoggerKeyForContext).(*Logger); ok && l != nil {
			return l
		}
	}

	if fallbackLogger == nil {
		fallbackLogger = FromEnv(os.Stdout)
	}
	if ctx == nil {
		return fallbackLogger
	}
	return fallbackLogger.WithCorrelationID(ctx)
}
