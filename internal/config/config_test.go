package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piwi3910/kerfcut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_DefaultsWhenFilesMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, ".env"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "best", cfg.Algorithm)
	assert.Equal(t, 0.125, cfg.Kerf)
	assert.Equal(t, DefaultServerAddress, cfg.Server.Address)
	assert.Zero(t, cfg.SearchTimeLimit)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, `
algorithm: shelf
kerf: 0.0625
search_time_limit: 1500ms
server:
  address: 127.0.0.1:9090
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "shelf", cfg.Algorithm)
	assert.Equal(t, 0.0625, cfg.Kerf)
	assert.Equal(t, 1500*time.Millisecond, cfg.SearchTimeLimit)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Address)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep their default")
}

func TestLoad_EnvFileThenProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "algorithm: shelf\nkerf: 0.0625\n")
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "KERFCUT_ALGORITHM=optimal\nKERFCUT_KERF=0.25\nKERFCUT_LOG_LEVEL=debug\n")

	t.Setenv("KERFCUT_KERF", "0.15625")

	cfg, err := Load(path, envFile)
	require.NoError(t, err)
	assert.Equal(t, "optimal", cfg.Algorithm, ".env beats the YAML file")
	assert.Equal(t, 0.15625, cfg.Kerf, "process env beats .env")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvDuration(t *testing.T) {
	t.Setenv("KERFCUT_SEARCH_TIME_LIMIT", "3s")
	t.Setenv("KERFCUT_SERVER_ADDRESS", ":7000")

	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.SearchTimeLimit)
	assert.Equal(t, ":7000", cfg.Server.Address)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Run("algorithm", func(t *testing.T) {
		t.Setenv("KERFCUT_ALGORITHM", "genetic")
		_, err := Load("", "")
		assert.Error(t, err)
	})
	t.Run("kerf", func(t *testing.T) {
		t.Setenv("KERFCUT_KERF", "-1")
		_, err := Load("", "")
		assert.Error(t, err)
	})
	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		writeFile(t, path, "kerf: [unterminated\n")
		_, err := Load(path, "")
		assert.Error(t, err)
	})
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Algorithm = "guillotine"
	cfg.SearchTimeLimit = 750 * time.Millisecond
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "guillotine", loaded.Algorithm)
	assert.Equal(t, 750*time.Millisecond, loaded.SearchTimeLimit)
}

func TestCutSettings(t *testing.T) {
	cfg := &Config{Kerf: 0.1, SearchTimeLimit: time.Second}
	s := cfg.CutSettings()
	assert.Equal(t, model.AlgorithmBest, s.Algorithm)
	assert.Equal(t, 0.1, s.Kerf)
	assert.Equal(t, time.Second, s.SearchTimeLimit)
}
