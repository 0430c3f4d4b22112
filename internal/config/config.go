// ABOUTME: Configuration for storage backend, seeding, and logging.
// ABOUTME: Handles XDG config paths, YAML load/save, and defaults.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/creasty/defaults"
	"github.com/harper/notes/internal/kv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Backend selects the kv implementation: badger, bolt, sqlite, or memory.
	Backend string `yaml:"backend" default:"badger"`

	// Path overrides the backend's default location under XDG_DATA_HOME.
	Path string `yaml:"path,omitempty"`

	// SeedWelcome adds a welcome note on first run.
	SeedWelcome bool `yaml:"seed_welcome" default:"true"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level string `yaml:"level" default:"warn"`

	// File receives log output. Empty means stderr for commands and no
	// logging at all inside the TUI.
	File string `yaml:"file,omitempty"`
}

// Default returns a Config with defaults applied.
func Default() *Config {
	cfg := &Config{}
	_ = defaults.Set(cfg)
	return cfg
}

func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notes")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads path, or DefaultPath when empty. A missing file yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // Config path is user-specified
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// decoding over the defaults keeps keys the file omits, including
	// explicit false for seed_welcome
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(kv.Backends(), c.Backend) {
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}

// Save writes the config to path, or DefaultPath when empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
