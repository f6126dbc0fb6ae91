package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalPath is the project-local config file.
const LocalPath = "configs/rift.yaml"

// LoadWithSource loads the application configuration and reports which file
// was used ("embedded" for the built-in default).
// Search order: customPath -> ~/.aether-rift/config.yaml -> ./configs/rift.yaml -> embedded default.
// Files are layered over the defaults, so a partial file only overrides what it sets.
func LoadWithSource(customPath string) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), "", fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultConfig(), "", fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(LocalPath); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, LocalPath, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), "embedded", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// parse decodes data over the defaults and validates the result.
func parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}

// UserDir returns ~/.aether-rift, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aether-rift")
}

// DefaultDBPath returns the run history location used when storage.path is empty.
func DefaultDBPath() string {
	dir := UserDir()
	if dir == "" {
		return "rift.db"
	}
	return filepath.Join(dir, "runs.db")
}

// DBPath returns the configured run history path or the default.
func (c Config) DBPath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	return DefaultDBPath()
}
