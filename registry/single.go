package registry

import (
	"fmt"
	"sync"

	berr "github.com/next-trace/scg-mediator/contract/errors"
	"github.com/next-trace/scg-mediator/kind"
)

// Lineage yields the inclusive ancestor chain of a kind, most specific first.
// *kind.Graph satisfies it.
type Lineage interface {
	Ancestors(k kind.Kind) []kind.Kind
}

type entry[V any] struct {
	id    kind.Kind
	value V
	seq   uint64
}

// Single maps each kind to at most one value. Lookups fall back along the
// kind's ancestors. Used for request handlers.
type Single[V any] struct {
	mu      sync.RWMutex
	lineage Lineage
	entries map[kind.Kind]entry[V]
}

// NewSingle constructs an empty Single registry.
func NewSingle[V any](l Lineage) *Single[V] {
	return &Single[V]{
		lineage: l,
		entries: make(map[kind.Kind]entry[V]),
	}
}

// Register stores v under k. Registering the same id again is a no-op; a
// different id for the same exact kind is rejected.
func (r *Single[V]) Register(k, id kind.Kind, v V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[k]; ok {
		if existing.id == id {
			return nil
		}

		return fmt.Errorf("register %s for %s (already handled by %s): %w", id, k, existing.id, berr.ErrHandlerExists)
	}

	r.entries[k] = entry[V]{id: id, value: v}

	return nil
}

// Resolve returns the value registered for the most specific kind along
// Ancestors(k). The boolean is false when nothing up to and including the root
// has an entry.
func (r *Single[V]) Resolve(k kind.Kind) (V, bool) {
	chain := r.lineage.Ancestors(k)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range chain {
		if e, ok := r.entries[a]; ok {
			return e.value, true
		}
	}

	var zero V

	return zero, false
}

// Lookup returns the id registered for exactly k.
func (r *Single[V]) Lookup(k kind.Kind) (kind.Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[k]

	return e.id, ok
}

// Remove deletes the entry for exactly k if it carries id.
func (r *Single[V]) Remove(k, id kind.Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[k]; ok && e.id == id {
		delete(r.entries, k)
		return true
	}

	return false
}

// Len returns the number of registered kinds.
func (r *Single[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Reset drops every entry.
func (r *Single[V]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[kind.Kind]entry[V])
}
