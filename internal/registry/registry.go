// Package registry maps operator names to the backend kernels that implement
// them. A Registry is built once at startup by running registration units,
// frozen, and then shared read-only with everything that selects kernels.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/samcharles93/kernreg/internal/kernel"
)

var (
	ErrNotFound        = errors.New("operator not registered")
	ErrDuplicate       = errors.New("duplicate kernel registration")
	ErrFrozen          = errors.New("registry is frozen")
	ErrNoMatch         = errors.New("no kernel matches signature")
	ErrInvalidArgument = errors.New("invalid argument")
)

type notFoundError struct {
	name string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("operator %q not registered", e.name)
}

func (e notFoundError) Unwrap() error {
	return ErrNotFound
}

// Registry holds kernel descriptors keyed by operator name.
// Register calls are serialized; once Freeze returns, lookups read the map
// without locking since nothing writes to it again.
type Registry struct {
	mu      sync.Mutex
	frozen  atomic.Bool
	kernels map[string][]kernel.Descriptor
}

func New() *Registry {
	return &Registry{
		kernels: make(map[string][]kernel.Descriptor),
	}
}

// Register appends desc under name. The same (backend, impl, dynamic)
// registered twice for one operator is rejected with ErrDuplicate.
func (r *Registry) Register(name string, desc kernel.Descriptor) error {
	if name == "" {
		return fmt.Errorf("%w: empty operator name", ErrInvalidArgument)
	}
	if desc.Name == "" {
		desc.Name = name
	}
	if desc.Name != name {
		return fmt.Errorf("%w: descriptor %q registered under %q", ErrInvalidArgument, desc.Name, name)
	}
	if err := desc.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Load() {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, name)
	}
	key := desc.Key()
	for _, existing := range r.kernels[name] {
		if existing.Key() == key {
			return fmt.Errorf("%w: %s %s", ErrDuplicate, name, key)
		}
	}
	r.kernels[name] = append(r.kernels[name], desc.Clone())
	return nil
}

// Freeze ends the registration phase. It is safe to call more than once.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen.Store(true)
	r.mu.Unlock()
}

func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// Lookup returns copies of the descriptors registered for name, in
// registration order.
func (r *Registry) Lookup(name string) ([]kernel.Descriptor, error) {
	descs := r.read(name)
	if len(descs) == 0 {
		return nil, notFoundError{name: name}
	}
	out := make([]kernel.Descriptor, len(descs))
	for i, d := range descs {
		out[i] = d.Clone()
	}
	return out, nil
}

func (r *Registry) read(name string) []kernel.Descriptor {
	if r.frozen.Load() {
		return r.kernels[name]
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.kernels[name])
}

// Names returns all registered operator names, sorted.
func (r *Registry) Names() []string {
	if !r.frozen.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	names := make([]string, 0, len(r.kernels))
	for name := range r.kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered operators.
func (r *Registry) Len() int {
	if !r.frozen.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	return len(r.kernels)
}

// Backends returns the distinct backends implementing name, in registration order.
func (r *Registry) Backends(name string) ([]string, error) {
	descs := r.read(name)
	if len(descs) == 0 {
		return nil, notFoundError{name: name}
	}
	var out []string
	for _, d := range descs {
		if !slices.Contains(out, d.Backend) {
			out = append(out, d.Backend)
		}
	}
	return out, nil
}
