// Package testutil provides shared test helpers for source and runner tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/imroc/req/v3"
	"github.com/jarcoal/httpmock"
)

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewReqClient returns a *req.Client whose transport is intercepted by httpmock.
// Responders registered via httpmock apply to this client only; the mock is
// deactivated automatically when the test finishes.
func NewReqClient(t *testing.T) *req.Client {
	t.Helper()
	client := req.NewClient()
	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}
