// Package hackertarget queries the HackerTarget hostsearch API.
//
// The API answers with CSV-like lines of "hostname,ip"; only the hostname
// column is kept. Errors are reported in-band as a plain-text sentinel.
package hackertarget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imroc/req/v3"

	"subgather/internal/apperr"
)

const (
	baseURL = "https://api.hackertarget.com/hostsearch/?q=%s"

	// apiError is the in-band error sentinel HackerTarget returns with HTTP 200
	// when the query matched nothing or was malformed.
	apiError = "error check your search parameter"

	// Name is the source identifier.
	Name = "hackertarget"
)

// Source queries the HackerTarget hostsearch API.
type Source struct {
	client *req.Client
	logger *slog.Logger
}

// NewSource creates a new HackerTarget source.
func NewSource(client *req.Client, logger *slog.Logger) *Source {
	return &Source{client: client, logger: logger}
}

// Name returns the source identifier.
func (s *Source) Name() string { return Name }

// Run fetches discovered hostnames for host.
func (s *Source) Run(ctx context.Context, host string) ([]string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf(baseURL, host))
	if err != nil {
		return nil, fmt.Errorf("%w: hackertarget: %w", apperr.ErrRequestFailed, err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("%w: hackertarget returned HTTP %d for %q", apperr.ErrRequestFailed, resp.StatusCode, host)
	}

	body := strings.TrimSpace(resp.String())
	if body == "" || strings.HasPrefix(body, apiError) {
		return nil, fmt.Errorf("%w: hackertarget: %s", apperr.ErrNoResults, host)
	}

	var names []string
	for _, line := range strings.Split(body, "\n") {
		name, _, _ := strings.Cut(strings.TrimSpace(line), ",")
		if name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: hackertarget: %s", apperr.ErrNoResults, host)
	}

	s.logger.Debug("source finished", "source", Name, "host", host, "count", len(names))
	return names, nil
}
