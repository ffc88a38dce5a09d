package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfigPath returns the OS-appropriate default config file path.
// Accepts userConfigDir for dependency injection (testability).
//   - Windows: %AppData%
//   - macOS: $HOME/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or $HOME/.config
func DefaultConfigPath(userConfigDir func() (string, error)) (string, error) {
	configDir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "subgather", "config.yaml"), nil
}

// Load reads the configuration from configPath, or the default location when
// configPath is empty. A missing config file is not an error; defaults are
// returned. A malformed file is a configuration error and aborts before any
// task is scheduled.
func Load(configPath string, userConfigDir func() (string, error)) (*Config, error) {
	if configPath == "" {
		var err error
		configPath, err = DefaultConfigPath(userConfigDir)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	cfg := NewDefaultConfig()
	v.SetDefault("global.concurrency", cfg.Global.Concurrency)
	v.SetDefault("global.timeout", cfg.Global.Timeout)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", configPath, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", configPath, err)
	}
	return cfg, nil
}
