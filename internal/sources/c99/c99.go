// Package c99 queries the C99 subdomainfinder API. Requires an API key,
// resolved from the C99_KEY credential at invocation time.
package c99

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imroc/req/v3"

	"subgather/internal/apperr"
	"subgather/internal/creds"
)

const (
	baseURL = "https://api.c99.nl/subdomainfinder?key=%s&domain=%s&json"

	// CredentialName is the credential looked up from the provider.
	CredentialName = "C99_KEY"

	// Name is the source identifier.
	Name = "c99"
)

// result is the JSON payload returned by C99. The subdomains field is nullable.
type result struct {
	Subdomains []item `json:"subdomains"`
}

type item struct {
	Subdomain string `json:"subdomain"`
}

// Source queries the C99 API.
type Source struct {
	client *req.Client
	creds  creds.Provider
	logger *slog.Logger
}

// NewSource creates a new C99 source. The credential is not resolved here;
// a missing key only fails the individual tasks that reach this source.
func NewSource(client *req.Client, provider creds.Provider, logger *slog.Logger) *Source {
	return &Source{client: client, creds: provider, logger: logger}
}

// Name returns the source identifier.
func (s *Source) Name() string { return Name }

// Run fetches discovered subdomains for host.
func (s *Source) Run(ctx context.Context, host string) ([]string, error) {
	key, err := s.creds.Get(CredentialName)
	if err != nil {
		return nil, fmt.Errorf("c99: %w", err)
	}

	var payload result
	resp, err := s.client.R().
		SetContext(ctx).
		SetSuccessResult(&payload).
		Get(fmt.Sprintf(baseURL, key, host))
	if err != nil {
		return nil, fmt.Errorf("%w: c99: %w", apperr.ErrRequestFailed, err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("%w: c99 returned HTTP %d for %q", apperr.ErrRequestFailed, resp.StatusCode, host)
	}

	names := make([]string, 0, len(payload.Subdomains))
	for _, it := range payload.Subdomains {
		if it.Subdomain != "" {
			names = append(names, it.Subdomain)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: c99: %s", apperr.ErrNoResults, host)
	}

	s.logger.Debug("source finished", "source", Name, "host", host, "count", len(names))
	return names, nil
}
