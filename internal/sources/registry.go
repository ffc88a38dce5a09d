package sources

import "slices"

// Registry holds the known sources for a run, partitioned into the free set
// (usable without credentials) and the keyed set (each resolves a credential
// at invocation time). The partition is fixed at registration; mode and
// exclusions are applied when the enabled set is resolved.
type Registry struct {
	free  []Source
	keyed []Source
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterFree adds a source to the free set.
func (r *Registry) RegisterFree(s Source) {
	r.free = append(r.free, s)
}

// RegisterKeyed adds a source to the keyed set.
func (r *Registry) RegisterKeyed(s Source) {
	r.keyed = append(r.keyed, s)
}

// Free returns the free sources in registration order.
func (r *Registry) Free() []Source {
	return slices.Clone(r.free)
}

// Keyed returns the keyed sources in registration order.
func (r *Registry) Keyed() []Source {
	return slices.Clone(r.keyed)
}

// Enabled resolves the enabled set for a run: the free sources, plus the keyed
// sources when includeKeyed is true, minus any source whose name appears in
// excluded. Exclusion wins over mode.
func (r *Registry) Enabled(includeKeyed bool, excluded []string) []Source {
	candidates := slices.Clone(r.free)
	if includeKeyed {
		candidates = append(candidates, r.keyed...)
	}

	enabled := make([]Source, 0, len(candidates))
	for _, s := range candidates {
		if slices.Contains(excluded, s.Name()) {
			continue
		}
		enabled = append(enabled, s)
	}
	return enabled
}
