package logger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		env     logger.Environment
		level   string
		wantErr bool
	}{
		{name: "development default level", env: logger.Development},
		{name: "production default level", env: logger.Production},
		{name: "explicit debug", env: logger.Development, level: "debug"},
		{name: "explicit level with spaces", env: logger.Production, level: " warn "},
		{name: "invalid level", env: logger.Development, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.NewLogger(tt.env, tt.level)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), logger.ErrParseLevel)
				assert.Nil(t, log)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("success when logger exists in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		retrieved, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, retrieved)
	})

	t.Run("error when no logger in context", func(t *testing.T) {
		retrieved, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, retrieved)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})
}

func TestLog(t *testing.T) {
	t.Run("prefers context logger over global", func(t *testing.T) {
		global, err := logger.NewLogger(logger.Development, "info")
		require.NoError(t, err)
		logger.SetGlobalLogger(global)
		defer logger.SetGlobalLogger(nil)

		local := logger.NewNop()
		ctx := logger.NewContext(context.Background(), local)

		assert.Same(t, local, logger.Log(ctx))
		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("falls back when nothing is configured", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		assert.NotNil(t, logger.Log(context.Background()))
	})
}

func TestInitGlobalLoggerWithLevel(t *testing.T) {
	logger.SetGlobalLogger(nil)
	defer logger.SetGlobalLogger(nil)

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Development, "debug"))
	first := logger.Log(context.Background())

	require.NoError(t, logger.InitGlobalLoggerWithLevel(logger.Production, "info"))
	assert.Same(t, first, logger.Log(context.Background()), "second init must keep the existing logger")

	logger.SetGlobalLogger(nil)
	err := logger.InitGlobalLoggerWithLevel(logger.Development, "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, logger.ErrInitGlobalLogger)
}

func TestRequestID(t *testing.T) {
	t.Run("keeps provided id", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")

		id, ok := logger.GetRequestID(ctx)
		assert.True(t, ok)
		assert.Equal(t, "req-42", id)
	})

	t.Run("generates uuid when empty", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("absent in plain context", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}

func TestWithRequestID(t *testing.T) {
	base, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	ctx := logger.NewRequestIDContext(context.Background(), "req-1")
	withID := base.WithRequestID(ctx)
	assert.NotSame(t, base, withID)

	assert.Same(t, base, base.WithRequestID(context.Background()))
}

func TestLoggerMethods(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	ctx := logger.NewRequestIDContext(context.Background(), "req-7")
	field := zap.String("custom_field", "custom_value")

	assert.NotPanics(t, func() {
		log.Debug(ctx, "debug message", field)
		log.Info(ctx, "info message", field, zap.String(logger.RequestID, "explicit"))
		log.Warn(ctx, "warn message")
		log.Error(context.Background(), "error message")
		_ = log.Sync()
	})

	assert.NotSame(t, log, log.With(field))
}
