// Package crtsh queries the crt.sh certificate transparency log API.
package crtsh

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imroc/req/v3"

	"subgather/internal/apperr"
	"subgather/internal/validate"
)

// baseURL uses the `%.domain` wildcard form to find all subdomains.
const baseURL = "https://crt.sh/?q=%%.%s&output=json"

// Name is the source identifier.
const Name = "crtsh"

// entry represents a single record returned by the crt.sh JSON API.
// name_value may pack several names separated by newlines.
type entry struct {
	CommonName string `json:"common_name"`
	NameValue  string `json:"name_value"`
}

// Source queries the crt.sh certificate transparency log API.
type Source struct {
	client *req.Client
	logger *slog.Logger
}

// NewSource creates a new crt.sh source.
func NewSource(client *req.Client, logger *slog.Logger) *Source {
	return &Source{client: client, logger: logger}
}

// Name returns the source identifier.
func (s *Source) Name() string { return Name }

// Run fetches certificate names for host. Wildcard and malformed names are
// dropped; the root itself is kept and left to the post-processor to judge.
func (s *Source) Run(ctx context.Context, host string) ([]string, error) {
	var entries []entry
	resp, err := s.client.R().
		SetContext(ctx).
		SetSuccessResult(&entries).
		Get(fmt.Sprintf(baseURL, host))
	if err != nil {
		return nil, fmt.Errorf("%w: crt.sh: %w", apperr.ErrRequestFailed, err)
	}
	if !resp.IsSuccessState() {
		return nil, fmt.Errorf("%w: crt.sh returned HTTP %d for %q", apperr.ErrRequestFailed, resp.StatusCode, host)
	}

	seen := make(map[string]struct{})
	var names []string
	for _, e := range entries {
		for _, field := range []string{e.CommonName, e.NameValue} {
			for _, name := range strings.Split(field, "\n") {
				name = strings.TrimSpace(name)
				if name == "" || strings.HasPrefix(name, "*") {
					continue
				}
				if !validate.IsDomain(name) {
					s.logger.Debug("crt.sh: skipping invalid name", "name", name, "host", host)
					continue
				}
				if _, ok := seen[name]; ok {
					continue
				}
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: crt.sh: %s", apperr.ErrNoResults, host)
	}

	s.logger.Debug("source finished", "source", Name, "host", host, "count", len(names))
	return names, nil
}
