package applog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPathPrefersXDGState(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "insightlens", "insightlens.log"), path)
}

func TestOpenWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	logger, closer, err := Open(Options{Path: path})
	require.NoError(t, err)

	logger.Info("query submitted", "request", 1)
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "query submitted")
	assert.NotContains(t, string(data), "hidden")
}

func TestNewVerboseLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Debug("probe", "component", "backend")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "component=backend")
}

func TestOpenOrDiscardFallsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	logger, closer, err := OpenOrDiscard(Options{Path: filepath.Join(blocker, "app.log")})
	require.Error(t, err)
	require.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}
