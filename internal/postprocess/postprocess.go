// Package postprocess filters raw discovered names against root-membership rules.
package postprocess

import "strings"

// Filter tests discovered names for membership under the run's root set. The
// root set is fixed once the run begins; Apply holds no cross-batch state and
// does not deduplicate.
type Filter struct {
	roots  []string
	strict bool
}

// NewAnyRoot returns a filter that keeps a name iff it equals some root or is
// a subdomain of it. Suffix matching is dot-aware: "notexample.com" is not
// under "example.com".
func NewAnyRoot(roots []string) *Filter {
	return &Filter{roots: roots}
}

// NewAnySubdomain returns a filter that keeps a name iff it is a proper
// subdomain of some root. The root itself is rejected: it is not strictly more
// specific than itself.
func NewAnySubdomain(roots []string) *Filter {
	return &Filter{roots: roots, strict: true}
}

// Keep reports whether name passes the filter.
func (f *Filter) Keep(name string) bool {
	for _, root := range f.roots {
		if strings.HasSuffix(name, "."+root) {
			return true
		}
		if !f.strict && name == root {
			return true
		}
	}
	return false
}

// Apply filters one batch, preserving the batch's internal order.
func (f *Filter) Apply(names []string) []string {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if f.Keep(name) {
			kept = append(kept, name)
		}
	}
	return kept
}
