// Package securitytrails queries the SecurityTrails subdomains API. Requires
// an API key, resolved from the SECURITYTRAILS_KEY credential at invocation time.
package securitytrails

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imroc/req/v3"

	"subgather/internal/apperr"
	"subgather/internal/creds"
)

const (
	baseURL = "https://api.securitytrails.com/v1/domain/%s/subdomains"

	// CredentialName is the credential looked up from the provider.
	CredentialName = "SECURITYTRAILS_KEY"

	// Name is the source identifier.
	Name = "securitytrails"
)

// result is the JSON payload returned by SecurityTrails. Subdomains are
// returned as bare prefixes ("www", "api") relative to the queried host.
type result struct {
	Subdomains []string `json:"subdomains"`
}

// Source queries the SecurityTrails API.
type Source struct {
	client *req.Client
	creds  creds.Provider
	logger *slog.Logger
}

// NewSource creates a new SecurityTrails source.
func NewSource(client *req.Client, provider creds.Provider, logger *slog.Logger) *Source {
	return &Source{client: client, creds: provider, logger: logger}
}

// Name returns the source identifier.
func (s *Source) Name() string { return Name }

// Run fetches discovered subdomains for host, expanding the returned prefixes
// to fully qualified names.
func (s *Source) Run(ctx context.Context, host string) ([]string, error) {
	key, err := s.creds.Get(CredentialName)
	if err != nil {
		return nil, fmt.Errorf("securitytrails: %w", err)
	}

	var payload result
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("APIKEY", key).
		SetSuccessResult(&payload).
		Get(fmt.Sprintf(baseURL, host))
	if err != nil {
		return nil, fmt.Errorf("%w: securitytrails: %w", apperr.ErrRequestFailed, err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("%w: securitytrails returned HTTP %d for %q", apperr.ErrRequestFailed, resp.StatusCode, host)
	}

	names := make([]string, 0, len(payload.Subdomains))
	for _, prefix := range payload.Subdomains {
		if prefix == "" {
			continue
		}
		names = append(names, prefix+"."+host)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: securitytrails: %s", apperr.ErrNoResults, host)
	}

	s.logger.Debug("source finished", "source", Name, "host", host, "count", len(names))
	return names, nil
}
