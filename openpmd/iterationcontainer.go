package openpmd

import (
	"sort"
	"strconv"

	"github.com/openPMD/openpmd-go/core"
)

// IterationContainer is the u64-keyed container spec.md §3 calls out as
// the one exception to Container's string keys ("Generic ordered mapping
// string -> T (or u64 -> Iteration)").
type IterationContainer struct {
	base
	children map[uint64]*Iteration
}

func newIterationContainer(series *Series, parent *core.Writable, key string) *IterationContainer {
	return &IterationContainer{base: newBase(series, parent, key), children: make(map[uint64]*Iteration)}
}

// Get returns (auto-creating) the Iteration at index.
func (c *IterationContainer) Get(index uint64) *Iteration {
	if it, ok := c.children[index]; ok {
		return it
	}
	it := newIteration(c.series, c.w, indexKey(index))
	it.index = index
	c.children[index] = it
	c.w.MarkDirty()
	return it
}

func (c *IterationContainer) Contains(index uint64) bool {
	_, ok := c.children[index]
	return ok
}

// Indices returns every iteration index in ascending order.
func (c *IterationContainer) Indices() []uint64 {
	idx := make([]uint64, 0, len(c.children))
	for k := range c.children {
		idx = append(idx, k)
	}
	sort.Slice(idx, func(i, j int) bool { return idx[i] < idx[j] })
	return idx
}

func (c *IterationContainer) Len() int { return len(c.children) }

// indexKey decimal-encodes index, matching the %T substitution rule of
// spec.md §6.
func indexKey(index uint64) string {
	return strconv.FormatUint(index, 10)
}
