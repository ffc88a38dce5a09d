// Package config loads the subgather configuration from an optional YAML file.
package config

// Config represents the complete subgather configuration.
// Flag values always override file values; the file only supplies defaults.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// API keys for keyed sources. Environment variables take precedence at
	// invocation time; these are the config-file fallback.
	APIKeys APIKeysConfig `yaml:"api_keys" mapstructure:"api_keys"`
}

// GlobalConfig holds global application settings.
type GlobalConfig struct {
	// Number of tasks fetching provider data concurrently
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`

	// Per-request timeout in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// Proxy URL (supports HTTP, HTTPS, SOCKS5)
	Proxy string `yaml:"proxy" mapstructure:"proxy"`

	// Custom User-Agent string
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// APIKeysConfig holds API keys for keyed sources.
type APIKeysConfig struct {
	C99            string `yaml:"c99" mapstructure:"c99"`
	SecurityTrails string `yaml:"securitytrails" mapstructure:"securitytrails"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Global: GlobalConfig{
			Concurrency: 200,
			Timeout:     15,
			Proxy:       "",
			UserAgent:   "",
		},
		APIKeys: APIKeysConfig{},
	}
}

// CredentialFallback maps credential names (the environment variable each keyed
// source looks up) to the config-file values, for use as a creds.Provider fallback.
func (c *Config) CredentialFallback() map[string]string {
	return map[string]string{
		"C99_KEY":            c.APIKeys.C99,
		"SECURITYTRAILS_KEY": c.APIKeys.SecurityTrails,
	}
}
