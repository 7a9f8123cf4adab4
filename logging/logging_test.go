package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"honnef.co/go/tap/config"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.LoggerConfig{Level: "debug", Format: "json", ServiceName: "test"}
	l := New(cfg, zapcore.AddSync(&buf))
	l.Debug("pressed", zap.Int("count", 2))
	require.NoError(t, l.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "test", entry["logger"])
	assert.Equal(t, "pressed", entry["msg"])
	assert.EqualValues(t, 2, entry["count"])
}

func TestLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LoggerConfig{Level: "warn", Format: "console"}, zapcore.AddSync(&buf))
	l.Info("hidden")
	l.Warn("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")

	buf.Reset()
	l = New(config.LoggerConfig{Level: "loud", Format: "console"}, zapcore.AddSync(&buf))
	l.Debug("hidden")
	l.Info("shown")
	assert.Equal(t, 1, strings.Count(buf.String(), "shown"))
	assert.NotContains(t, buf.String(), "hidden")
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tap.log")
	var console bytes.Buffer
	cfg := config.LoggerConfig{Level: "info", Format: "console", LogFile: path, MaxSize: 1}
	l := New(cfg, zapcore.AddSync(&console))
	l.Info("to both")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "to both", entry["msg"])
	assert.Contains(t, console.String(), "to both")
}
