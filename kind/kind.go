package kind

import (
	"fmt"
	"sync"

	berr "github.com/next-trace/scg-mediator/contract/errors"
)

// Kind identifies a request, notification, handler, behavior, or failure kind.
type Kind string

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }

// Kinded is implemented by values that know their own kind: requests,
// notifications and failures that want more specific error-handler routing.
type Kinded interface {
	Kind() Kind
}

// Graph records the explicit parent of every declared kind. Roots have no parent.
// Because a parent must exist before its child is declared, every ancestor chain
// is finite and terminates at a root.
//
// Graph is safe for concurrent use.
type Graph struct {
	mu      sync.RWMutex
	parents map[Kind]Kind
	roots   map[Kind]struct{}
}

// NewGraph constructs a Graph seeded with the given roots.
func NewGraph(roots ...Kind) *Graph {
	g := &Graph{
		parents: make(map[Kind]Kind),
		roots:   make(map[Kind]struct{}, len(roots)),
	}

	for _, r := range roots {
		if r != "" {
			g.roots[r] = struct{}{}
		}
	}

	return g
}

// Declare links k to parent. Declaring the same link again is a no-op.
func (g *Graph) Declare(k, parent Kind) error {
	if k == "" || parent == "" {
		return fmt.Errorf("declare %q under %q: %w", k, parent, berr.ErrInvalidArgument)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.roots[k]; ok {
		return fmt.Errorf("declare root %s: %w", k, berr.ErrInvalidArgument)
	}

	if !g.hasLocked(parent) {
		return fmt.Errorf("declare %s: parent %s is not declared: %w", k, parent, berr.ErrTypeConstraint)
	}

	if existing, ok := g.parents[k]; ok {
		if existing == parent {
			return nil
		}

		return fmt.Errorf("declare %s under %s (already under %s): %w", k, parent, existing, berr.ErrKindConflict)
	}

	g.parents[k] = parent

	return nil
}

// Has reports whether k is a root or a declared kind.
func (g *Graph) Has(k Kind) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.hasLocked(k)
}

func (g *Graph) hasLocked(k Kind) bool {
	if _, ok := g.roots[k]; ok {
		return true
	}

	_, ok := g.parents[k]

	return ok
}

// Ancestors returns k followed by its parent, grandparent and so on up to and
// including its root. An undeclared kind yields just itself.
func (g *Graph) Ancestors(k Kind) []Kind {
	g.mu.RLock()
	defer g.mu.RUnlock()

	chain := []Kind{k}

	for cur := k; ; {
		parent, ok := g.parents[cur]
		if !ok {
			return chain
		}

		chain = append(chain, parent)
		cur = parent
	}
}

// IsDescendantOrEqual reports whether ancestor appears in Ancestors(k).
func (g *Graph) IsDescendantOrEqual(k, ancestor Kind) bool {
	for _, a := range g.Ancestors(k) {
		if a == ancestor {
			return true
		}
	}

	return false
}

// IsStrictDescendant reports whether ancestor is a proper ancestor of k.
func (g *Graph) IsStrictDescendant(k, ancestor Kind) bool {
	return k != ancestor && g.IsDescendantOrEqual(k, ancestor)
}

// Root returns the last element of Ancestors(k).
func (g *Graph) Root(k Kind) Kind {
	chain := g.Ancestors(k)
	return chain[len(chain)-1]
}

// Children returns the kinds whose parent is k, in no particular order.
func (g *Graph) Children(k Kind) []Kind {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []Kind

	for child, parent := range g.parents {
		if parent == k {
			out = append(out, child)
		}
	}

	return out
}
