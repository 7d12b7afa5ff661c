package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/casedesk/internal/config"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	l.Info("case added", "id", "abc")

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "case added", m["msg"])
	assert.Equal(t, "abc", m["id"])
}

func TestNew_TextFormatHasSource(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LogConfig{Level: "debug", Format: "text"}, &buf)
	l.Debug("source test")

	assert.Contains(t, buf.String(), "source=")
	assert.Contains(t, buf.String(), "source test")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.level))
		})
	}
}

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "casedesk.log")
	l, closer, err := Open(config.LogConfig{Level: "info", Format: "json", File: path})
	require.NoError(t, err)
	l.Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Equal(t, l.Handler(), slog.Default().Handler())
}

func TestOpen_Discard(t *testing.T) {
	l, closer, err := Open(config.LogConfig{Level: "info", Format: "text", File: "-"})
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.NoError(t, closer.Close())
}
