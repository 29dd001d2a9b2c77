package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a fresh directory so no stray insightlens.yaml or .env
// from the working tree leaks into a test.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"INSIGHTLENS_BACKEND_URL", "INSIGHTLENS_TIMEOUT", "INSIGHTLENS_ALT_SCREEN", "INSIGHTLENS_LOG_FILE", "INSIGHTLENS_VERBOSE"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("backend-url", "", "")
	fs.Duration("timeout", 0, "")
	fs.Bool("no-alt-screen", false, "")
	fs.String("log-file", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("config", "", "")
	return fs
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	clearEnv(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Empty(t, cfg.BackendURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.True(t, cfg.AltScreen)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, cfg.FileUsed)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingBackendURL)
}

func TestLoadPrecedence(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)

	writeFile(t, filepath.Join(dir, "insightlens.yaml"), "backend_url: http://yaml:8000\ntimeout: 30s\nverbose: true\n")
	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://yaml:8000", cfg.BackendURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "insightlens.yaml", cfg.FileUsed)

	writeFile(t, filepath.Join(dir, ".env"), "INSIGHTLENS_BACKEND_URL=http://dotenv:8000\nVITE_BACKEND_URL=http://ignored\n")
	cfg, err = Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv:8000", cfg.BackendURL)

	t.Setenv("INSIGHTLENS_BACKEND_URL", "http://env:8000")
	cfg, err = Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "http://env:8000", cfg.BackendURL)

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--backend-url", "http://flag:8000/", "--no-alt-screen", "--timeout", "5s"}))
	cfg, err = Load(Options{Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "http://flag:8000/", cfg.BackendURL)
	assert.False(t, cfg.AltScreen)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verbose, "unset flags keep the file value")

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://flag:8000", cfg.BackendURL)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)
	path := filepath.Join(dir, "custom.yml")
	writeFile(t, path, "backend_url: https://analytics.example.com\nalt_screen: false\n")

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "https://analytics.example.com", cfg.BackendURL)
	assert.False(t, cfg.AltScreen)
	assert.Equal(t, path, cfg.FileUsed)
}

func TestLoadMissingExplicitConfigFails(t *testing.T) {
	chdir(t)
	clearEnv(t)
	_, err := Load(Options{ConfigFile: "nope.yaml"})
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]Config{
		"scheme":  {BackendURL: "ftp://host", Timeout: time.Second},
		"no host": {BackendURL: "http://", Timeout: time.Second},
		"timeout": {BackendURL: "http://host", Timeout: 0},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
}
