package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/philipparndt/goplane/internal/config"
)

func TestGetBeforeInitialize(t *testing.T) {
	ResetForTest()
	l := Get()
	require.NotNil(t, l)
	// the nop logger accepts writes without output
	l.Info("ignored")
}

func TestConsoleOutput(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	l := InitializeWith(config.LoggerConfig{Level: "debug", Format: "console"}, zapcore.AddSync(&buf))
	l.Debug("zoom changed")

	out := buf.String()
	assert.Contains(t, out, "zoom changed")
	assert.Contains(t, out, "goplane.")
	assert.Same(t, l, Get())
}

func TestJSONOutputAndLevel(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	l := InitializeWith(config.LoggerConfig{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))
	l.Info("hidden")
	l.Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "shown", entry["msg"])
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(config.LoggerConfig{Level: "loud", Format: "json"}, zapcore.AddSync(&buf))
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitializeOnlyOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var first, second bytes.Buffer
	InitializeWith(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&first))
	InitializeWith(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&second))
	Get().Info("hello")

	assert.Contains(t, first.String(), "hello")
	assert.Empty(t, second.String())
}

func TestFileCore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goplane.log")
	var buf bytes.Buffer
	l := New(config.LoggerConfig{Level: "info", Format: "console", File: path, MaxSize: 1}, zapcore.AddSync(&buf))
	l.Info("to both")
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to both"`)
	assert.Contains(t, buf.String(), "to both")
}
