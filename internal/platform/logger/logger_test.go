package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"loud":    zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatConsole, ParseFormat("text"))
	assert.Equal(t, FormatConsole, ParseFormat("Console"))
	assert.Equal(t, FormatJSON, ParseFormat(""))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
}

func TestNew_RespectsLevel(t *testing.T) {
	l, err := New(Options{Level: "warn", Format: "json", App: "test"})
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	dev, err := New(Options{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}
