package registry

import (
	"sync"

	"github.com/next-trace/scg-mediator/kind"
)

// Errors maps namespace → failure kind → dispatched kind → ordered set of
// values. The namespace is the root the dispatched kind belongs to, so request
// and notification registrations never see each other.
type Errors[V any] struct {
	mu      sync.RWMutex
	lineage Lineage
	tree    map[kind.Kind]map[kind.Kind]map[kind.Kind]*bucket[V]
}

// NewErrors constructs an empty Errors registry.
func NewErrors[V any](l Lineage) *Errors[V] {
	return &Errors[V]{
		lineage: l,
		tree:    make(map[kind.Kind]map[kind.Kind]map[kind.Kind]*bucket[V]),
	}
}

// Register adds v for failures of kind failure raised while handling values of
// kind dispatched, within namespace.
func (r *Errors[V]) Register(namespace, failure, dispatched, id kind.Kind, v V) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byFailure, ok := r.tree[namespace]
	if !ok {
		byFailure = make(map[kind.Kind]map[kind.Kind]*bucket[V])
		r.tree[namespace] = byFailure
	}

	byDispatched, ok := byFailure[failure]
	if !ok {
		byDispatched = make(map[kind.Kind]*bucket[V])
		byFailure[failure] = byDispatched
	}

	b, ok := byDispatched[dispatched]
	if !ok {
		b = newBucket[V]()
		byDispatched[dispatched] = b
	}

	b.add(entry[V]{id: id, value: v})
}

// Resolve walks every failure ancestor (most specific first) and, within each,
// every dispatched ancestor (most specific first), concatenating the values
// found in registration order and skipping ids already collected.
func (r *Errors[V]) Resolve(namespace, failure, dispatched kind.Kind) []V {
	failures := r.lineage.Ancestors(failure)
	dispatchedChain := r.lineage.Ancestors(dispatched)

	r.mu.RLock()
	defer r.mu.RUnlock()

	byFailure := r.tree[namespace]
	if len(byFailure) == 0 {
		return nil
	}

	var out []V

	seen := make(map[kind.Kind]struct{})

	for _, f := range failures {
		byDispatched, ok := byFailure[f]
		if !ok {
			continue
		}

		for _, d := range dispatchedChain {
			b, ok := byDispatched[d]
			if !ok {
				continue
			}

			for _, e := range b.entries() {
				if _, dup := seen[e.id]; dup {
					continue
				}

				seen[e.id] = struct{}{}
				out = append(out, e.value)
			}
		}
	}

	return out
}

// Len returns the number of stored (namespace, failure, dispatched, id) tuples.
func (r *Errors[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, byFailure := range r.tree {
		for _, byDispatched := range byFailure {
			for _, b := range byDispatched {
				n += len(b.order)
			}
		}
	}

	return n
}

// Reset drops every entry.
func (r *Errors[V]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tree = make(map[kind.Kind]map[kind.Kind]map[kind.Kind]*bucket[V])
}
