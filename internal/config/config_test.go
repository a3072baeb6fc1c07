package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.55, cfg.Threshold)
	assert.Equal(t, "python", cfg.RequiredLanguage)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "http://localhost:11434", cfg.EmbedderURL)
	assert.Equal(t, "all-minilm", cfg.EmbeddingModel)
	assert.Equal(t, 8080, cfg.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"threshold": 0.6, "data_dir": "inputs"}`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.6, cfg.Threshold)
	assert.Equal(t, "inputs", cfg.DataDir)
	// Unset fields fall back to defaults.
	assert.Equal(t, "python", cfg.RequiredLanguage)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestValidate_RejectsOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Threshold = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.EmbedderURL = "not-a-url"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}
