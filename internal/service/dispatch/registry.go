package dispatch

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sandevgo/huskbot/internal/core"
)

type bindKey struct {
	prefix  string
	trigger string
}

// Registry holds the registered bindings. Registration is append-only
// and normally finishes before dispatch starts; the mutex keeps late
// registration safe anyway. Reads hand out snapshots so the matcher
// stays a pure function of what it sees.
type Registry struct {
	mu       sync.RWMutex
	bindings []*Binding
	index    map[bindKey][]*Binding
	prefixes []string // distinct, longest first
}

func NewRegistry() *Registry {
	return &Registry{
		index: make(map[bindKey][]*Binding),
	}
}

// Register validates the binding and inserts it. A rejected binding
// leaves the registry untouched.
func (r *Registry) Register(b *Binding) error {
	if b == nil {
		return fmt.Errorf("%w: nil binding", ErrInvalidConfiguration)
	}
	if err := b.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, prefix := range b.prefixes {
		for _, trigger := range b.triggers {
			key := bindKey{prefix: prefix, trigger: trigger}
			for _, existing := range r.index[key] {
				if scopesOverlap(existing, b) {
					return fmt.Errorf(
						"%w: %q already bound for prefix %q in an overlapping scope",
						ErrDuplicateBinding, trigger, prefix,
					)
				}
			}
		}
	}

	r.bindings = append(r.bindings, b)
	for _, prefix := range b.prefixes {
		for _, trigger := range b.triggers {
			key := bindKey{prefix: prefix, trigger: trigger}
			r.index[key] = append(r.index[key], b)
		}
		r.addPrefix(prefix)
	}
	return nil
}

// Bind constructs a binding and registers it in one call.
func (r *Registry) Bind(handler core.Handler, triggers []string, opts ...Option) error {
	b := NewBinding(handler, triggers...)
	for _, opt := range opts {
		opt(b)
	}
	return r.Register(b)
}

// Bindings returns a snapshot of all bindings in registration order.
func (r *Registry) Bindings() []*Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Binding, len(r.bindings))
	copy(out, r.bindings)
	return out
}

// Prefixes returns the distinct registered prefixes, longest first.
// Equal-length prefixes keep the order they first appeared in, so the
// scan order is deterministic; the empty prefix always sorts last.
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.prefixes))
	copy(out, r.prefixes)
	return out
}

// Lookup returns the bindings registered for a (prefix, trigger) pair
// in registration order.
func (r *Registry) Lookup(prefix, trigger string) []*Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := r.index[bindKey{prefix: prefix, trigger: trigger}]
	if len(matches) == 0 {
		return nil
	}
	out := make([]*Binding, len(matches))
	copy(out, matches)
	return out
}

// addPrefix inserts a prefix into the ordered distinct list.
// Caller must hold the write lock.
func (r *Registry) addPrefix(prefix string) {
	for _, p := range r.prefixes {
		if p == prefix {
			return
		}
	}
	r.prefixes = append(r.prefixes, prefix)
	sort.SliceStable(r.prefixes, func(i, j int) bool {
		return len(r.prefixes[i]) > len(r.prefixes[j])
	})
}
