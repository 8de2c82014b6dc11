package sampler

import (
	"context"
	"fmt"
)

// Registry is the ordered set of interface names captured at startup.
// It never changes afterwards, so every row has the same columns.
type Registry struct {
	names []string
}

// NewRegistry snapshots the interfaces currently reported by src, keeping the
// source's order. On failure it returns an empty registry along with the error.
func NewRegistry(ctx context.Context, src CounterSource) (*Registry, error) {
	counters, err := src.NetCounters(ctx)
	if err != nil {
		return &Registry{}, fmt.Errorf("enumerating interfaces: %w", err)
	}
	names := make([]string, 0, len(counters))
	for _, c := range counters {
		names = append(names, c.Name)
	}
	return RegistryOf(names...), nil
}

// RegistryOf builds a registry from a fixed list. Empty and repeated names
// are dropped.
func RegistryOf(names ...string) *Registry {
	seen := make(map[string]struct{}, len(names))
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		kept = append(kept, name)
	}
	return &Registry{names: kept}
}

// Names returns the registered interfaces in column order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered interfaces.
func (r *Registry) Len() int {
	return len(r.names)
}
