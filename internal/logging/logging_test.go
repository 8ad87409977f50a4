package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevelFallback(t *testing.T) {
	l, err := New(Config{Level: "chatty"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewDebugLevel(t *testing.T) {
	l, err := New(Config{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	l, err := New(Config{Level: "info", Format: "json", OutputPath: path})
	require.NoError(t, err)

	l.Info("loaded spectrum")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"loaded spectrum"`)
}

func TestMustFallsBackToNop(t *testing.T) {
	l := Must(Config{OutputPath: filepath.Join(t.TempDir(), "missing-dir", "x", "log")})
	require.NotNil(t, l)
}
