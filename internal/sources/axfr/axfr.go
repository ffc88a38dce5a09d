// Package axfr attempts a DNS zone transfer against the host's authoritative
// name servers. Most zones refuse the transfer; when one is misconfigured the
// full record set comes back in a single exchange, which fits the one-fetch
// source contract.
package axfr

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"subgather/internal/apperr"
)

// Name is the source identifier.
const Name = "axfr"

// nsResolver abstracts the name-server lookup. *net.Resolver satisfies it.
type nsResolver interface {
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
}

// Source attempts zone transfers.
type Source struct {
	resolver nsResolver
	attempt  func(ctx context.Context, host, addr string) ([]string, error)
	logger   *slog.Logger
}

// NewSource creates a new zone-transfer source. A nil resolver uses
// net.DefaultResolver.
func NewSource(resolver *net.Resolver, logger *slog.Logger) *Source {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	s := &Source{resolver: resolver, logger: logger}
	s.attempt = s.transferIn
	return s
}

// Run looks up the authoritative name servers for host and attempts a transfer
// against each until one yields records.
func (s *Source) Run(ctx context.Context, host string) ([]string, error) {
	servers, err := s.resolver.LookupNS(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("%w: axfr: ns lookup for %q: %w", apperr.ErrRequestFailed, host, err)
	}
	if len(servers) == 0 {
		return nil, fmt.Errorf("%w: axfr: no name servers for %s", apperr.ErrNoResults, host)
	}

	var lastErr error
	for _, ns := range servers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: axfr: %s: %w", apperr.ErrRequestFailed, host, err)
		}
		addr := net.JoinHostPort(strings.TrimSuffix(ns.Host, "."), "53")
		names, err := s.attempt(ctx, host, addr)
		if err != nil {
			s.logger.Debug("axfr attempt failed", "host", host, "server", addr, "err", err)
			lastErr = err
			continue
		}
		if len(names) > 0 {
			s.logger.Debug("source finished", "source", Name, "host", host, "server", addr, "count", len(names))
			return names, nil
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: axfr: %s: %w", apperr.ErrRequestFailed, host, lastErr)
	}
	return nil, fmt.Errorf("%w: axfr: %s", apperr.ErrNoResults, host)
}

// Name returns the source identifier.
func (s *Source) Name() string { return Name }

// transferIn runs one transfer against addr and collects the record owner
// names. The Transfer is built fresh per server: it caches its connection, and
// a closed one left over from a failed attempt would poison every attempt
// after it. The timeouts are recomputed here so each server only gets what
// remains of the task budget, not a fresh one.
func (s *Source) transferIn(ctx context.Context, host, addr string) ([]string, error) {
	transfer := new(dns.Transfer)
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		transfer.DialTimeout = remaining
		transfer.ReadTimeout = remaining
	}

	msg := new(dns.Msg)
	msg.SetAxfr(dns.Fqdn(host))

	envelopes, err := transfer.In(msg, addr)
	if err != nil {
		return nil, err
	}

	var records []dns.RR
	for envelope := range envelopes {
		if envelope.Error != nil {
			return nil, envelope.Error
		}
		records = append(records, envelope.RR...)
	}
	return recordNames(records), nil
}

// recordNames reduces resource records to their unique owner names with the
// trailing dot removed.
func recordNames(records []dns.RR) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, rr := range records {
		name := strings.TrimSuffix(rr.Header().Name, ".")
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
