package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesJSONLines(t *testing.T) {
	dir := t.TempDir()

	cleanup, err := Setup(Config{Dir: dir, Debug: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "logs", FileName), Path())

	L().Info("convert.done", "category", "length")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(filepath.Join(dir, "logs", FileName))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.GreaterOrEqual(t, len(lines), 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &rec))
	assert.Equal(t, "convert.done", rec["msg"])
	assert.Equal(t, "length", rec["category"])
	assert.Contains(t, rec, "source")
}

func TestInfoLevelDropsDebug(t *testing.T) {
	dir := t.TempDir()

	cleanup, err := Setup(Config{Dir: dir})
	require.NoError(t, err)
	L().Debug("hidden")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(filepath.Join(dir, "logs", FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
}

func TestCleanupRestoresDiscard(t *testing.T) {
	cleanup, err := Setup(Config{Dir: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, cleanup())

	assert.Empty(t, Path())
	assert.NotNil(t, L())
}

func TestSetupFailureDiscards(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Setup(Config{Dir: blocker})
	assert.Error(t, err)
	assert.Empty(t, Path())
}
