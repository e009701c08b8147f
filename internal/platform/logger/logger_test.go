package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"verbose": Info,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("console"))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestZapLogger_WithMergesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core)).With(map[string]any{"request_id": "abc"})

	l.Warn("image cleanup failed", map[string]any{
		"dog_id": "d-1",
		"error":  errors.New("boom"),
		"":       "ignored",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, zapcore.WarnLevel, e.Level)
	assert.Equal(t, "image cleanup failed", e.Message)

	ctx := e.ContextMap()
	assert.Equal(t, "abc", ctx["request_id"])
	assert.Equal(t, "d-1", ctx["dog_id"])
	assert.Equal(t, "boom", ctx["error"])
	_, hasBlank := ctx[""]
	assert.False(t, hasBlank)
}

func TestNew_BuildsBothFormats(t *testing.T) {
	for _, f := range []Format{FormatText, FormatJSON} {
		l, err := New(Options{Level: Debug, Format: f, App: "barkbuddy"})
		require.NoError(t, err)
		require.NotNil(t, l)
	}
}
