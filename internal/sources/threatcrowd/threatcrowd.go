// Package threatcrowd queries the ThreatCrowd domain report API.
package threatcrowd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imroc/req/v3"

	"subgather/internal/apperr"
)

const (
	baseURL = "https://www.threatcrowd.org/searchApi/v2/domain/report/?domain=%s"

	// Name is the source identifier.
	Name = "threatcrowd"
)

// report is the JSON payload returned by ThreatCrowd. The subdomains field is
// nullable; a missing or empty list means no results.
type report struct {
	Subdomains []string `json:"subdomains"`
}

// Source queries the ThreatCrowd API.
type Source struct {
	client *req.Client
	logger *slog.Logger
}

// NewSource creates a new ThreatCrowd source.
func NewSource(client *req.Client, logger *slog.Logger) *Source {
	return &Source{client: client, logger: logger}
}

// Name returns the source identifier.
func (s *Source) Name() string { return Name }

// Run fetches discovered subdomains for host.
func (s *Source) Run(ctx context.Context, host string) ([]string, error) {
	var payload report
	resp, err := s.client.R().
		SetContext(ctx).
		SetSuccessResult(&payload).
		Get(fmt.Sprintf(baseURL, host))
	if err != nil {
		return nil, fmt.Errorf("%w: threatcrowd: %w", apperr.ErrRequestFailed, err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("%w: threatcrowd returned HTTP %d for %q", apperr.ErrRequestFailed, resp.StatusCode, host)
	}

	if len(payload.Subdomains) == 0 {
		return nil, fmt.Errorf("%w: threatcrowd: %s", apperr.ErrNoResults, host)
	}

	s.logger.Debug("source finished", "source", Name, "host", host, "count", len(payload.Subdomains))
	return payload.Subdomains, nil
}
