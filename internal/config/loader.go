package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory for file discovery.
func LoadFrom(dir string) (*Config, error) {
	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}
	return LoadFile(path)
}

// LoadFile loads an explicit config file. An empty path means defaults only.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath returns the first config file in the discovery chain,
// or "" when none exists (defaults-only mode).
func discoverConfigPath(dir string) (string, error) {
	candidates := []string{
		filepath.Join(dir, "autodebug.yaml"),
		filepath.Join(dir, "autodebug.toml"),
	}

	if home, err := os.UserHomeDir(); err == nil {
		userDir := filepath.Join(home, ".config", "autodebug")
		candidates = append(candidates,
			filepath.Join(userDir, "config.yaml"),
			filepath.Join(userDir, "config.toml"),
		)
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// loadFromFile reads a YAML or TOML config file, chosen by extension.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}

	return &cfg, nil
}

// merge overlays override onto base. Scalar fields override when non-zero,
// pointer fields override when non-nil.
func merge(base *Config, override *Config) {
	if override.Backend.BaseURL != "" {
		base.Backend.BaseURL = override.Backend.BaseURL
	}
	if override.Backend.TimeoutSeconds != 0 {
		base.Backend.TimeoutSeconds = override.Backend.TimeoutSeconds
	}

	if override.Replay.IntervalMS != nil {
		base.Replay.IntervalMS = override.Replay.IntervalMS
	}

	if override.UI.Theme != "" {
		base.UI.Theme = override.UI.Theme
	}
	if override.UI.TimestampFormat != "" {
		base.UI.TimestampFormat = override.UI.TimestampFormat
	}
	if override.UI.LogScrollSpeed != 0 {
		base.UI.LogScrollSpeed = override.UI.LogScrollSpeed
	}
	if override.UI.ShowLineNumbers != nil {
		base.UI.ShowLineNumbers = override.UI.ShowLineNumbers
	}
	if override.UI.DefaultCase != "" {
		base.UI.DefaultCase = override.UI.DefaultCase
	}

	if override.Log.File != "" {
		base.Log.File = override.Log.File
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}

	if override.Update.Repo != "" {
		base.Update.Repo = override.Update.Repo
	}
}

// applyEnvOverrides applies AUTODEBUG_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AUTODEBUG_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("AUTODEBUG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AUTODEBUG_REPLAY_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Replay.IntervalMS = &n
		} else {
			fmt.Fprintf(os.Stderr, "warning: AUTODEBUG_REPLAY_INTERVAL_MS=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("AUTODEBUG_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Backend.TimeoutSeconds = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: AUTODEBUG_TIMEOUT=%q is not a valid integer, ignoring\n", v)
		}
	}
}
