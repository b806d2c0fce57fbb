package master

import (
	"fmt"
	"sort"
)

// Registry maps master names to implementations. It is populated once by
// NewRegistry and never mutated afterwards, so concurrent reads are safe.
type Registry struct {
	masters map[string]Master
	names   []string
}

// NewRegistry registers the given masters. Empty or duplicate names are an error.
func NewRegistry(masters ...Master) (*Registry, error) {
	r := &Registry{masters: make(map[string]Master, len(masters))}
	for _, m := range masters {
		name := m.Name()
		if name == "" {
			return nil, fmt.Errorf("register master %T: empty name", m)
		}
		if _, ok := r.masters[name]; ok {
			return nil, fmt.Errorf("register master %q: duplicate name", name)
		}
		r.masters[name] = m
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Lookup returns the master registered under name.
func (r *Registry) Lookup(name string) (Master, error) {
	if m, ok := r.masters[name]; ok {
		return m, nil
	}
	return nil, &UnknownMasterError{Name: name}
}

func (r *Registry) Has(name string) bool {
	_, ok := r.masters[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *Registry) Len() int { return len(r.names) }
