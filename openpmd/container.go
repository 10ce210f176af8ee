package openpmd

import (
	"sort"

	"github.com/openPMD/openpmd-go/core"
)

// childNode is satisfied by every value a Container may hold: it must
// expose its own Writable so the container can wire parent/child backend
// state and dirty propagation per spec.md §3's "Containers" row.
type childNode interface {
	Writable() *core.Writable
}

// Container is the generic ordered mapping string -> T of spec.md §3: "a
// Container ... is itself a Writable. Lookup by missing key auto-creates a
// default child ... and marks both dirty." T is any of Mesh,
// ParticleSpecies, Record, RecordComponent -- whatever concrete node this
// container instance holds.
type Container[T childNode] struct {
	base
	children map[string]T
	newChild func(series *Series, parent *core.Writable, key string) T
}

func newContainer[T childNode](series *Series, parent *core.Writable, key string, factory func(*Series, *core.Writable, string) T) *Container[T] {
	return &Container[T]{
		base:     newBase(series, parent, key),
		children: make(map[string]T),
		newChild: factory,
	}
}

// Get returns an existing child, auto-creating a default one on miss (the
// containers' "Lookup by missing key auto-creates a default child" rule).
func (c *Container[T]) Get(key string) T {
	if child, ok := c.children[key]; ok {
		return child
	}
	child := c.newChild(c.series, c.w, key)
	c.children[key] = child
	c.w.MarkDirty()
	child.Writable().MarkDirty()
	return child
}

// Contains reports whether key already names a child, without creating one.
func (c *Container[T]) Contains(key string) bool {
	_, ok := c.children[key]
	return ok
}

// Erase removes a child by key; it does not enqueue DELETE_PATH/DELETE_DATASET
// itself -- callers that need the backend-visible delete call the
// corresponding entity method first.
func (c *Container[T]) Erase(key string) bool {
	if _, ok := c.children[key]; !ok {
		return false
	}
	delete(c.children, key)
	return true
}

// Keys returns the child keys in sorted order -- deterministic for tests;
// spec.md §3 does not make iteration order an observable model guarantee.
func (c *Container[T]) Keys() []string {
	keys := make([]string, 0, len(c.children))
	for k := range c.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Container[T]) Len() int { return len(c.children) }

// Range iterates children in sorted key order.
func (c *Container[T]) Range(fn func(key string, child T) bool) {
	for _, k := range c.Keys() {
		if !fn(k, c.children[k]) {
			return
		}
	}
}
