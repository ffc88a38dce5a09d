// Package threatminer queries the ThreatMiner subdomains endpoint.
package threatminer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/imroc/req/v3"

	"subgather/internal/apperr"
)

const (
	// rt=5 selects the subdomains report type.
	baseURL = "https://api.threatminer.org/v2/domain.php?q=%s&rt=5"

	// Name is the source identifier.
	Name = "threatminer"
)

// apiResponse is the JSON envelope returned by ThreatMiner.
// status_code "404" means no results, delivered with HTTP 200.
type apiResponse struct {
	StatusCode    string          `json:"status_code"`
	StatusMessage string          `json:"status_message"`
	Results       json.RawMessage `json:"results"`
}

// Source queries the ThreatMiner API.
type Source struct {
	client *req.Client
	logger *slog.Logger
}

// NewSource creates a new ThreatMiner source.
func NewSource(client *req.Client, logger *slog.Logger) *Source {
	return &Source{client: client, logger: logger}
}

// Name returns the source identifier.
func (s *Source) Name() string { return Name }

// Run fetches discovered subdomains for host.
func (s *Source) Run(ctx context.Context, host string) ([]string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf(baseURL, host))
	if err != nil {
		return nil, fmt.Errorf("%w: threatminer: %w", apperr.ErrRequestFailed, err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("%w: threatminer returned HTTP %d for %q", apperr.ErrRequestFailed, resp.StatusCode, host)
	}

	var envelope apiResponse
	if err := resp.UnmarshalJson(&envelope); err != nil {
		return nil, fmt.Errorf("%w: threatminer: decoding response: %w", apperr.ErrRequestFailed, err)
	}
	if envelope.StatusCode == "404" {
		return nil, fmt.Errorf("%w: threatminer: %s", apperr.ErrNoResults, host)
	}

	var names []string
	if len(envelope.Results) > 0 {
		if err := json.Unmarshal(envelope.Results, &names); err != nil {
			return nil, fmt.Errorf("%w: threatminer: decoding results: %w", apperr.ErrRequestFailed, err)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: threatminer: %s", apperr.ErrNoResults, host)
	}

	s.logger.Debug("source finished", "source", Name, "host", host, "count", len(names))
	return names, nil
}
