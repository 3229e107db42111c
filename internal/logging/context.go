package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	commandKey
)

// GenerateRequestID returns the first 8 hex characters of a random UUID.
func GenerateRequestID() string {
	return uuid.NewString()[:8]
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// NewRequestContext derives a context carrying a fresh request id. A nil
// parent means context.Background.
func NewRequestContext(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return WithRequestID(parent, GenerateRequestID())
}

// WithCommand records the CLI command path ("smarttask category add")
// handling the request.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

func CommandFromContext(ctx context.Context) string {
	return stringValue(ctx, commandKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(key).(string)
	return s
}

// LoggerFromContext returns the global logger annotated with whatever
// request id and command the context carries.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With(KeyRequestID, id)
	}
	if command := CommandFromContext(ctx); command != "" {
		logger = logger.With(KeyCommand, command)
	}
	return logger
}
