package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devcompass/compass-cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("MissingFileUsesDefaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.ProviderGemini, cfg.Provider)
		assert.Equal(t, config.DefaultGeminiModel, cfg.Model)
		assert.Equal(t, "auto", cfg.Style)
	})
	t.Run("ReadsFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "provider: openai\napi_key: sk-test\nbase_url: http://localhost:8080/v1\nstyle: dark\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, config.ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "sk-test", cfg.APIKey)
		assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)
		assert.Equal(t, config.DefaultOpenAIModel, cfg.Model)
		assert.Equal(t, "dark", cfg.Style)
		assert.Equal(t, path, cfg.Path())
	})
	t.Run("EnvOverridesFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api_key: from-file\n"), 0644))
		t.Setenv("COMPASS_API_KEY", "from-env")
		t.Setenv("COMPASS_MODEL", "gemini-custom")

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.APIKey)
		assert.Equal(t, "gemini-custom", cfg.Model)
	})
	t.Run("RejectsUnknownProvider", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("provider: carrier-pigeon\n"), 0644))

		_, err := config.Load(path)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg, err := config.Load(path)
	require.NoError(t, err)

	cfg.Provider = config.ProviderOpenAI
	cfg.APIKey = "sk-saved"
	cfg.Model = "gpt-test"
	require.NoError(t, cfg.Save())

	reloaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.ProviderOpenAI, reloaded.Provider)
	assert.Equal(t, "sk-saved", reloaded.APIKey)
	assert.Equal(t, "gpt-test", reloaded.Model)
}

func TestDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.Default(path)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, path, cfg.Path())
	assert.Equal(t, config.DefaultGeminiModel, cfg.Model)
}
