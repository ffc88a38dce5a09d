// Package wayback extracts hostnames from the Wayback Machine CDX index.
//
// The CDX API returns one archived URL per line; only the hostname component
// is kept. This source can be slow on large domains, which is the main reason
// the per-task timeout exists.
package wayback

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/imroc/req/v3"

	"subgather/internal/apperr"
)

const (
	baseURL = "https://web.archive.org/cdx/search/cdx?url=*.%s/*&output=text&fl=original&collapse=urlkey"

	// Name is the source identifier.
	Name = "wayback"
)

// Source queries the Wayback Machine CDX index.
type Source struct {
	client *req.Client
	logger *slog.Logger
}

// NewSource creates a new Wayback Machine source.
func NewSource(client *req.Client, logger *slog.Logger) *Source {
	return &Source{client: client, logger: logger}
}

// Name returns the source identifier.
func (s *Source) Name() string { return Name }

// Run fetches archived URLs for host and reduces them to unique hostnames.
func (s *Source) Run(ctx context.Context, host string) ([]string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf(baseURL, host))
	if err != nil {
		return nil, fmt.Errorf("%w: wayback: %w", apperr.ErrRequestFailed, err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("%w: wayback returned HTTP %d for %q", apperr.ErrRequestFailed, resp.StatusCode, host)
	}

	seen := make(map[string]struct{})
	var names []string
	for _, line := range strings.Split(resp.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		u, err := url.Parse(line)
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(u.Hostname(), ".")
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: wayback: %s", apperr.ErrNoResults, host)
	}

	s.logger.Debug("source finished", "source", Name, "host", host, "count", len(names))
	return names, nil
}
