// Package config provides reading and writing of mystuff configuration.
// Configuration lives in config.yaml inside the data directory, so each data
// directory carries its own settings. A missing file means all defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/jpl-au/mystuff/internal/format"
	"github.com/jpl-au/mystuff/internal/store"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// FileName is the config file name inside the data directory.
const FileName = "config.yaml"

// Defaults applied when a key is not configured.
const (
	DefaultBackend = store.BackendJSONL
	DefaultRender  = format.ModeAuto
)

// Author represents the author recorded in the audit log.
type Author struct {
	Name string `yaml:"name,omitempty"`
}

// Storage selects the persistence backend.
type Storage struct {
	Backend *string `yaml:"backend,omitempty"`
}

// List holds options for listing links.
type List struct {
	Render *string `yaml:"render,omitempty"`
}

// Config contains configuration for mystuff.
type Config struct {
	Author  Author  `yaml:"author,omitempty"`
	Storage Storage `yaml:"storage,omitempty"`
	List    List    `yaml:"list,omitempty"`

	// path is the file this config was loaded from (for Save)
	path string
}

// Backends lists the storage backends that may be configured. The memory
// backend is excluded since it would discard every link on exit.
func Backends() []string {
	return []string{store.BackendJSONL, store.BackendSQLite}
}

// Validate checks that all configured values are acceptable.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Storage.Backend != nil && !slices.Contains(Backends(), *c.Storage.Backend) {
		return fmt.Errorf("%w: storage.backend must be one of %v, got %q",
			ErrInvalidValue, Backends(), *c.Storage.Backend)
	}
	if c.List.Render != nil && !slices.Contains(format.Modes(), *c.List.Render) {
		return fmt.Errorf("%w: list.render must be one of %v, got %q",
			ErrInvalidValue, format.Modes(), *c.List.Render)
	}
	return nil
}

// Backend returns the configured storage backend (defaults to jsonl).
func (c *Config) Backend() string {
	if c.Storage.Backend == nil {
		return DefaultBackend
	}
	return *c.Storage.Backend
}

// Render returns the configured list render mode (defaults to auto).
func (c *Config) Render() string {
	if c.List.Render == nil {
		return DefaultRender
	}
	return *c.List.Render
}

// Path returns the config file path for a data directory.
func Path(dir string) string {
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, FileName)
}

// Load reads configuration from dir. A missing file yields defaults.
func Load(dir string) (*Config, error) {
	path := Path(dir)
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// File returns the path this config was loaded from.
func (c *Config) File() string { return c.path }

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
