// internal/logging/logger_test.go
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
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cfgpkg "github.com/tamzrod/f70-replicator/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel(""))
}

func TestNewLogger_JSONToStdoutAndFile(t *testing.T) {
	var out bytes.Buffer
	file := filepath.Join(t.TempDir(), "f70.log")

	log, err := newLogger(cfgpkg.LoggingConfig{
		Level:  "info",
		Format: "json",
		File:   cfgpkg.FileConfig{Filename: file, MaxSizeMB: 1},
	}, &out)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("poll ok", zap.String("unit", "f70"))
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "poll ok", entry["msg"])
	assert.Equal(t, "f70", entry["unit"])
	assert.Equal(t, "info", entry["level"])

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"poll ok"`)
}

func TestNewLogger_Console(t *testing.T) {
	var out bytes.Buffer
	log, err := newLogger(cfgpkg.LoggingConfig{Level: "debug", Format: "console"}, &out)
	require.NoError(t, err)

	log.Debug("frame sent")
	assert.Contains(t, out.String(), "frame sent")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out.String()), "{"))
}
