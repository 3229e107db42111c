package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelWarn, cfg.Level)
	assert.False(t, cfg.JSON)
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.AddSource)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInit(t *testing.T) {
	t.Run("text_config", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelInfo, Output: &buf})
		assert.False(t, Debug)

		Info("hello", "key", "value")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("json_config", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})
		assert.True(t, Debug)
	})

	t.Run("nil_output_uses_stderr", func(t *testing.T) {
		Init(Config{Level: slog.LevelInfo})
		assert.NotNil(t, Logger())
	})
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelWarn, Output: &buf})

	Info("quiet")
	DebugLog("quieter")
	assert.Empty(t, buf.String())

	Warn("loud")
	Error("louder")
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), "louder")
}

func TestInitDebug(t *testing.T) {
	InitDebug()
	assert.True(t, Debug)
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})

	With(KeyTaskID, 5).Info("restored")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(5), entry[KeyTaskID])
}

func TestContextLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})

	ctx := WithRequestID(context.Background(), "abc123")

	t.Run("debug_context", func(t *testing.T) {
		buf.Reset()
		DebugContext(ctx, "debug message")
		assert.Contains(t, buf.String(), "debug message")
		assert.Contains(t, buf.String(), `"request_id":"abc123"`)
	})

	t.Run("warn_context", func(t *testing.T) {
		buf.Reset()
		WarnContext(ctx, "warn message")
		assert.Contains(t, buf.String(), "warn message")
	})

	t.Run("error_context", func(t *testing.T) {
		buf.Reset()
		ErrorContext(ctx, "error message")
		assert.Contains(t, buf.String(), "error message")
	})
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelDebug, JSON: true, Output: &buf})

	LogOperation("undo", time.Now(), KeyTaskID, 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "undo", entry[KeyOperation])
	assert.Contains(t, entry, KeyDuration)
	assert.Equal(t, float64(7), entry[KeyTaskID])
}

func TestGenerateRequestID(t *testing.T) {
	id1 := GenerateRequestID()
	id2 := GenerateRequestID()

	assert.Len(t, id1, 8)
	assert.NotEqual(t, id1, id2)
}

func TestNewRequestContext(t *testing.T) {
	ctx := NewRequestContext(context.Background())
	assert.Len(t, RequestIDFromContext(ctx), 8)

	//nolint:staticcheck // nil parent is accepted
	ctx = NewRequestContext(nil)
	assert.NotEmpty(t, RequestIDFromContext(ctx))
}

func TestRequestIDFromContext(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		assert.Equal(t, "", RequestIDFromContext(context.Background()))
	})

	t.Run("nil_context", func(t *testing.T) {
		//nolint:staticcheck // exercising the nil guard
		assert.Equal(t, "", RequestIDFromContext(nil))
	})

	t.Run("wrong_type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), requestIDKey, 42)
		assert.Equal(t, "", RequestIDFromContext(ctx))
	})
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelInfo, Output: &buf})

	LoggerFromContext(context.Background()).Info("plain")
	assert.NotContains(t, buf.String(), KeyRequestID)

	buf.Reset()
	LoggerFromContext(WithRequestID(context.Background(), "r1")).Info("tagged")
	assert.Contains(t, buf.String(), "request_id=r1")
	assert.NotContains(t, buf.String(), KeyCommand+"=")

	buf.Reset()
	ctx := WithCommand(WithRequestID(context.Background(), "r2"), "smarttask done")
	LoggerFromContext(ctx).Info("command")
	assert.Contains(t, buf.String(), "request_id=r2")
	assert.Contains(t, buf.String(), `cmd="smarttask done"`)
}

func TestCommandFromContext(t *testing.T) {
	assert.Empty(t, CommandFromContext(context.Background()))
	//nolint:staticcheck // exercising the nil guard
	assert.Empty(t, CommandFromContext(nil))

	ctx := WithCommand(NewRequestContext(context.Background()), "smarttask list")
	assert.Equal(t, "smarttask list", CommandFromContext(ctx))
	assert.Len(t, RequestIDFromContext(ctx), 8, "command and request id coexist")
}
