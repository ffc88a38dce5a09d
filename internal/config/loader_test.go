package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subgather/internal/config"
)

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load("", func() (string, error) { return dir, nil })
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Global.Concurrency)
	assert.Equal(t, 15, cfg.Global.Timeout)
	assert.Empty(t, cfg.APIKeys.C99)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("global:\n  concurrency: 50\n  user_agent: custom-agent\napi_keys:\n  c99: secret\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := config.Load(path, os.UserConfigDir)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Global.Concurrency)
	assert.Equal(t, 15, cfg.Global.Timeout, "unset values keep defaults")
	assert.Equal(t, "custom-agent", cfg.Global.UserAgent)
	assert.Equal(t, "secret", cfg.APIKeys.C99)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), os.UserConfigDir)
	require.Error(t, err)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("global: [not a map"), 0o600))

	_, err := config.Load(path, os.UserConfigDir)
	require.Error(t, err)
}

func TestCredentialFallback(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.APIKeys.C99 = "k1"
	cfg.APIKeys.SecurityTrails = "k2"

	fb := cfg.CredentialFallback()
	assert.Equal(t, "k1", fb["C99_KEY"])
	assert.Equal(t, "k2", fb["SECURITYTRAILS_KEY"])
}
