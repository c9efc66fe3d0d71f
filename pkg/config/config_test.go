package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvCatalog, EnvTemplates, EnvSeed, EnvMaxSolutions, EnvWorkers, EnvCacheSize, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

// TestDefault tests that the defaults validate
func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, uint64(1), cfg.Seed)
	assert.Positive(t, cfg.Workers)
	assert.False(t, cfg.CatalogIsSnapshot())
}

// TestFromEnv tests environment overrides
func TestFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvCatalog, "/data/parts.snap")
	t.Setenv(EnvTemplates, "/data/templates")
	t.Setenv(EnvSeed, "42")
	t.Setenv(EnvMaxSolutions, "100")
	t.Setenv(EnvWorkers, "3")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/data/parts.snap", cfg.CatalogPath)
	assert.True(t, cfg.CatalogIsSnapshot())
	assert.Equal(t, "/data/templates", cfg.TemplatesDir)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 100, cfg.MaxSolutions)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
}

// TestValidate_Errors tests that every problem is reported
func TestValidate_Errors(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSeed, "-1")
	t.Setenv(EnvWorkers, "many")
	t.Setenv(EnvMaxSolutions, "-5")
	t.Setenv(EnvLogLevel, "loud")

	cfg := FromEnv()
	assert.Equal(t, Default().Workers, cfg.Workers)

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{EnvSeed, EnvWorkers, "Config.MaxSolutions", "Config.LogLevel"} {
		assert.Contains(t, err.Error(), want)
	}
}

// TestLoad_EnvFile tests reading a .env file without overriding the environment
func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "genenet.env")
	require.NoError(t, os.WriteFile(path, []byte("GENENET_TEMPLATES=from-file\nGENENET_SEED=7\n"), 0o644))
	t.Setenv(EnvSeed, "9")
	// godotenv skips variables that are present, even when empty
	require.NoError(t, os.Unsetenv(EnvTemplates))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.TemplatesDir)
	assert.Equal(t, uint64(9), cfg.Seed)
}

// TestLoad_MissingDefaultFile tests that a missing ./.env is ignored
func TestLoad_MissingDefaultFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "catalog", cfg.CatalogPath)
}

// TestLogger tests the configured level
func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"
	var buf bytes.Buffer
	logger := cfg.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
