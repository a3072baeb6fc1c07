// Package config provides configuration loading and validation for the
// CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config holds all tunable settings. All fields are optional in the
// JSON file; missing values fall back to defaults or CLI flags.
type Config struct {
	// Evaluation
	Threshold        float64 `json:"threshold,omitempty" validate:"gte=0,lte=1"`
	RequiredLanguage string  `json:"required_language,omitempty"`
	Workers          int     `json:"workers,omitempty" validate:"gte=0,lte=64"`

	// Embedding backend
	EmbedderURL    string `json:"embedder_url,omitempty" validate:"omitempty,url"`
	EmbeddingModel string `json:"embedding_model,omitempty"`

	// Paths
	DataDir     string `json:"data_dir,omitempty"`
	OutputDir   string `json:"output_dir,omitempty"`
	SnapshotDir string `json:"snapshot_dir,omitempty"`

	// Server
	Port   int    `json:"port,omitempty" validate:"gte=0,lte=65535"`
	APIKey string `json:"api_key,omitempty"`

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"`

	// Logging
	Verbose  bool `json:"verbose,omitempty"`
	JSONLogs bool `json:"json_logs,omitempty"`
}

// Default returns the configuration used when no file or flags
// override it.
func Default() Config {
	return Config{
		Threshold:        0.55,
		RequiredLanguage: "python",
		Workers:          4,
		EmbedderURL:      "http://localhost:11434",
		EmbeddingModel:   "all-minilm",
		OutputDir:        "output",
		Port:             8080,
	}
}

// LoadConfig loads configuration from a JSON file and applies defaults
// for unset fields.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	merged := cfg.MergeWithDefaults(Default())
	return &merged, nil
}

// Validate checks field constraints via struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-value fields filled
// from defaults. Used to apply config file values on top of built-in
// defaults before CLI flags are considered.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Threshold == 0 {
		result.Threshold = defaults.Threshold
	}
	if result.RequiredLanguage == "" {
		result.RequiredLanguage = defaults.RequiredLanguage
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.EmbedderURL == "" {
		result.EmbedderURL = defaults.EmbedderURL
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.SnapshotDir == "" {
		result.SnapshotDir = defaults.SnapshotDir
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	return result
}
