package registry

import (
	"cmp"
	"slices"
	"sync"

	"github.com/next-trace/scg-mediator/kind"
)

// bucket is an insertion-ordered set of entries keyed by id.
type bucket[V any] struct {
	order []kind.Kind
	byID  map[kind.Kind]entry[V]
}

func newBucket[V any]() *bucket[V] {
	return &bucket[V]{byID: make(map[kind.Kind]entry[V])}
}

// add stores e unless its id is already present.
func (b *bucket[V]) add(e entry[V]) bool {
	if _, ok := b.byID[e.id]; ok {
		return false
	}

	b.order = append(b.order, e.id)
	b.byID[e.id] = e

	return true
}

func (b *bucket[V]) entries() []entry[V] {
	out := make([]entry[V], 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.byID[id])
	}

	return out
}

// Multi maps each kind to a set of values. Collect unions the sets found along
// a kind's ancestors. Used for notification handlers and pipeline behaviors.
type Multi[V any] struct {
	mu      sync.RWMutex
	lineage Lineage
	seq     uint64
	buckets map[kind.Kind]*bucket[V]
}

// NewMulti constructs an empty Multi registry.
func NewMulti[V any](l Lineage) *Multi[V] {
	return &Multi[V]{
		lineage: l,
		buckets: make(map[kind.Kind]*bucket[V]),
	}
}

// Register adds v under k. A (k, id) pair is stored once.
func (r *Multi[V]) Register(k, id kind.Kind, v V) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.buckets[k]
	if !ok {
		b = newBucket[V]()
		r.buckets[k] = b
	}

	r.seq++
	b.add(entry[V]{id: id, value: v, seq: r.seq})
}

// Collect returns every value registered for k or one of its ancestors, each id
// once, ordered from the oldest registration to the newest. An id registered at
// several levels keeps its earliest position.
func (r *Multi[V]) Collect(k kind.Kind) []V {
	chain := r.lineage.Ancestors(k)

	r.mu.RLock()

	found := make(map[kind.Kind]entry[V])

	for _, a := range chain {
		b, ok := r.buckets[a]
		if !ok {
			continue
		}

		for _, e := range b.entries() {
			if prev, seen := found[e.id]; !seen || e.seq < prev.seq {
				found[e.id] = e
			}
		}
	}

	r.mu.RUnlock()

	ordered := make([]entry[V], 0, len(found))
	for _, e := range found {
		ordered = append(ordered, e)
	}

	slices.SortFunc(ordered, func(a, b entry[V]) int { return cmp.Compare(a.seq, b.seq) })

	out := make([]V, len(ordered))
	for i, e := range ordered {
		out[i] = e.value
	}

	return out
}

// Len returns the number of stored (kind, id) pairs.
func (r *Multi[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, b := range r.buckets {
		n += len(b.order)
	}

	return n
}

// Reset drops every entry.
func (r *Multi[V]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buckets = make(map[kind.Kind]*bucket[V])
	r.seq = 0
}
