package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"fatal": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestFromContext checks fallback to the global logger and roundtrip through ToContext.
func TestFromContext(t *testing.T) {
	t.Parallel()

	// No logger attached -> global.
	require.Same(t, global, FromContext(context.Background()))

	named := global.Named("test")
	ctx := ToContext(context.Background(), named)
	require.Same(t, named, FromContext(ctx))

	// Nil context is tolerated.
	//nolint:staticcheck // Deliberately passing nil to exercise the fallback.
	require.Same(t, global, FromContext(nil))
}
