// config_keys.go provides key-value access to configuration settings.
//
// The CLI and MCP surfaces address config by dotted string keys
// (e.g., "storage.backend"); config.go only deals with the YAML structure.
//
// Pointers are used for optional fields so "not set" (nil) stays distinct
// from an explicit value equal to the default.

package config

import (
	"fmt"
	"slices"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{"author.name", "storage.backend", "list.render"}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "storage.backend":
		return c.Backend(), nil
	case "list.render":
		return c.Render(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "storage.backend":
		if !slices.Contains(Backends(), value) {
			return fmt.Errorf("%w: storage.backend must be one of %v", ErrInvalidValue, Backends())
		}
		c.Storage.Backend = &value
	case "list.render":
		if err := c.setRender(value); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func (c *Config) setRender(value string) error {
	tmp := Config{List: List{Render: &value}}
	if err := tmp.Validate(); err != nil {
		return err
	}
	c.List.Render = &value
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":     c.Author.Name,
		"storage.backend": c.Backend(),
		"list.render":     c.Render(),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "storage.backend":
		return c.Storage.Backend != nil
	case "list.render":
		return c.List.Render != nil
	default:
		return false
	}
}
