package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climate-server/internal/config"
)

func TestNew_ReleaseBuildWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, config.Config{AppEnv: "prod", LogLevel: slog.LevelInfo, Driver: config.DriverPostgres}, "1.2.3", "climate-server")

	logger.Info("hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "climate-server", rec["app"])
	assert.Equal(t, "1.2.3", rec["version"])
	assert.Equal(t, "prod", rec["env"])
	assert.Equal(t, config.DriverPostgres, rec["driver"])
	assert.Equal(t, "v", rec["k"])
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, config.Config{AppEnv: "prod", LogLevel: slog.LevelWarn}, "1.2.3", "climate-server")

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_DevBuildUsesTint(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, config.Config{AppEnv: "dev", LogLevel: slog.LevelDebug}, "dev", "climate-server")

	logger.Debug("tinted")

	out := buf.String()
	assert.Contains(t, out, "tinted")
	assert.False(t, strings.HasPrefix(strings.TrimSpace(out), "{"), "dev output should not be JSON: %q", out)
}
