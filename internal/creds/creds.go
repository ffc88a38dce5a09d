// Package creds resolves API credentials for keyed sources.
//
// Credentials are looked up lazily, at task invocation time, never when the
// source registry is assembled. A missing credential is a recoverable failure
// scoped to the single task that needed it.
package creds

import (
	"fmt"

	"subgather/internal/apperr"
)

// Provider resolves a named credential. Implementations must be safe for
// concurrent use; the runner invokes Get from many tasks at once.
type Provider interface {
	Get(name string) (string, error)
}

// EnvProvider resolves credentials from the process environment, falling back
// to a static map (typically API keys loaded from the config file). The getenv
// function is injected so tests never touch the real environment.
type EnvProvider struct {
	getenv   func(string) string
	fallback map[string]string
}

// NewEnvProvider creates an EnvProvider. fallback may be nil.
func NewEnvProvider(getenv func(string) string, fallback map[string]string) *EnvProvider {
	return &EnvProvider{getenv: getenv, fallback: fallback}
}

// Get returns the credential value for name, preferring the environment over
// the fallback map. Returns an error wrapping apperr.ErrMissingCredential when
// neither yields a non-empty value.
func (p *EnvProvider) Get(name string) (string, error) {
	if v := p.getenv(name); v != "" {
		return v, nil
	}
	if v, ok := p.fallback[name]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", apperr.ErrMissingCredential, name)
}

// Static is a fixed credential map, used in tests.
type Static map[string]string

// Get implements Provider.
func (s Static) Get(name string) (string, error) {
	if v, ok := s[name]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", apperr.ErrMissingCredential, name)
}
