package policy

import (
	"fmt"
	"log/slog"
	"sort"
)

// Registry maps policy names to their implementations. It replaces any
// ambient global: callers construct one at process start, register the
// policies they want to offer, and thread it through explicitly.
// Registration happens before concurrent access, so no mutex is needed.
type Registry struct {
	policies map[string]Policy
	logger   *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		policies: make(map[string]Policy),
		logger:   logger.With("component", "policy-registry"),
	}
}

// Defaults creates a Registry with the three built-in policies registered.
func Defaults(logger *slog.Logger) *Registry {
	r := NewRegistry(logger)
	r.Register(PriorityPolicy{})
	r.Register(EDFPolicy{})
	r.Register(FCFSPolicy{})
	return r
}

// Register adds a Policy to the registry, keyed by its Name().
func (r *Registry) Register(p Policy) {
	r.policies[p.Name()] = p
	r.logger.Debug("policy registered", "name", p.Name())
}

// Get returns the Policy for the given name or an error if none is registered.
func (r *Registry) Get(name string) (Policy, error) {
	p, ok := r.policies[name]
	if !ok {
		return nil, fmt.Errorf("no policy registered for %q", name)
	}
	return p, nil
}

// Names returns the registered policy names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
