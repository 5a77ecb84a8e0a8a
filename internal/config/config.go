// Package config loads and saves the budgetagent.yaml project
// configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/budgetagent-dev/budgetagent/internal/model"
)

// Filename is the well-known config file name in a data directory.
const Filename = "budgetagent.yaml"

// Config represents the top-level budgetagent.yaml configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Import ImportConfig `yaml:"import"`
	Git    GitConfig    `yaml:"git"`
}

// DataConfig locates the persistent state of a project.
type DataConfig struct {
	Dir      string `yaml:"dir"`
	Registry string `yaml:"registry"`
}

// ImportConfig controls the import pipeline.
type ImportConfig struct {
	DefaultCurrency string `yaml:"default_currency"`
	CheckDuplicates bool   `yaml:"check_duplicates"`
}

// GitConfig controls git integration for the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a budgetagent.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project rooted
// at dir.
func Default(dir string) *Config {
	return &Config{
		Data: DataConfig{
			Dir:      dir,
			Registry: "accounts.yaml",
		},
		Import: ImportConfig{
			DefaultCurrency: model.DefaultCurrency,
			CheckDuplicates: true,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "BudgetAgent",
			AuthorEmail: "agent@budgetagent.dev",
		},
	}
}

// RegistryPath resolves the registry file location. A relative registry
// path is taken relative to the data directory.
func (c *Config) RegistryPath() string {
	if filepath.IsAbs(c.Data.Registry) {
		return c.Data.Registry
	}
	return filepath.Join(c.Data.Dir, c.Data.Registry)
}
