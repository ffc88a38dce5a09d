// Package sources defines the provider capability every adapter implements and
// the registry that assembles the enabled set for a run.
package sources

import "context"

// Source is the contract every provider adapter must implement: one fetch and
// parse cycle for one host against one provider.
//
// Run returns the flat list of discovered names, normalised from whatever
// payload shape the provider uses. A well-formed but empty result set must be
// reported as apperr.ErrNoResults so the scheduler treats "provider has
// nothing" and "provider is down" identically. Implementations must honour ctx
// cancellation; the runner bounds every call with a deadline.
type Source interface {
	Name() string
	Run(ctx context.Context, host string) ([]string, error)
}
