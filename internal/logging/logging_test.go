package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linediff.log")
	t.Setenv(EnvLogFile, path)

	logger := New(false)
	logger.Info("compared", zap.String("old", "a.txt"), zap.Int("added", 3))
	logger.Debug("hidden")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "compared", entry["msg"])
	assert.Equal(t, "a.txt", entry["old"])
	assert.Equal(t, float64(3), entry["added"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_VerboseIncludesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linediff.log")
	t.Setenv(EnvLogFile, path)

	logger := New(true)
	logger.Debug("table built", zap.Int("rows", 4))
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"table built"`)
}

func TestNew_NoOpWhenUnset(t *testing.T) {
	t.Setenv(EnvLogFile, "")
	logger := New(true)
	logger.Info("should not panic")
	assert.Equal(t, zap.NewNop().Core().Enabled(zap.InfoLevel), logger.Core().Enabled(zap.InfoLevel))
}

func TestNew_NoOpWhenPathIsDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvLogFile, dir)

	New(false).Info("ignored")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
