package sources

import (
	"log/slog"

	"github.com/imroc/req/v3"

	"subgather/internal/creds"
	"subgather/internal/sources/axfr"
	"subgather/internal/sources/c99"
	"subgather/internal/sources/crtsh"
	"subgather/internal/sources/hackertarget"
	"subgather/internal/sources/securitytrails"
	"subgather/internal/sources/threatcrowd"
	"subgather/internal/sources/threatminer"
	"subgather/internal/sources/wayback"
)

// NewDefaultRegistry assembles the built-in source set. The HTTP client is
// shared by every adapter for connection reuse; keyed adapters receive the
// credential provider and resolve their key per invocation.
func NewDefaultRegistry(client *req.Client, provider creds.Provider, logger *slog.Logger) *Registry {
	r := NewRegistry()

	r.RegisterFree(crtsh.NewSource(client, logger))
	r.RegisterFree(hackertarget.NewSource(client, logger))
	r.RegisterFree(threatcrowd.NewSource(client, logger))
	r.RegisterFree(threatminer.NewSource(client, logger))
	r.RegisterFree(wayback.NewSource(client, logger))
	r.RegisterFree(axfr.NewSource(nil, logger))

	r.RegisterKeyed(c99.NewSource(client, provider, logger))
	r.RegisterKeyed(securitytrails.NewSource(client, provider, logger))

	return r
}
