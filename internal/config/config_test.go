package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Data.Format = "csv"
	cfg.Categories = []string{"Перевод организации", "Пополнение"}

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Data, got.Data)
	assert.Equal(t, cfg.Display.Limit, got.Display.Limit)
	assert.Equal(t, cfg.Rates.BaseURL, got.Rates.BaseURL)
	assert.Equal(t, cfg.Log.Level, got.Log.Level)
	assert.Equal(t, cfg.Categories, got.Categories)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, "json", cfg.Data.Format)
	assert.Equal(t, 10, cfg.Display.Limit)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Categories)
	assert.Empty(t, cfg.Rates.APIKey)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("data:\n  format: xlsx\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", cfg.Data.Format)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 10, cfg.Display.Limit)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("data: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "dir: data")
	assert.Contains(t, contents, "format: json")
	assert.Contains(t, contents, "limit: 10")
	assert.NotContains(t, contents, "api_key")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataDir, "/srv/bank")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAPIKey, "secret")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, "/srv/bank", cfg.Data.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "secret", cfg.Rates.APIKey)
}

func TestLoadOrDefault_Missing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvDataDir, "")

	cfg, err := LoadOrDefault(FileName)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Data.Dir)
}

func TestLoadOrDefault_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvAPIKey, "")
	require.NoError(t, os.Unsetenv(EnvAPIKey))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXCHANGE_API_KEY=from-dotenv\n"), 0o644))

	cfg, err := LoadOrDefault(FileName)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Rates.APIKey)
}
