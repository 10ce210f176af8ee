// Package chunk implements the chunk-table data types of spec.md §4.4: the
// unit of data distribution between a writer population and a reader
// population, plus the merge pre-pass that collapses adjacent chunks
// before a Strategy runs.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package chunk

import (
	"sort"

	"github.com/openPMD/openpmd-go/core"
)

// Info is the (offset, extent) pair identifying a hyperslab of a dataset.
type Info struct {
	Offset core.Offset
	Extent core.Extent
}

// Points returns the number of elements the chunk covers.
func (c Info) Points() uint64 { return core.Extent(c.Extent).Points() }

// End returns, per dimension, Offset[d]+Extent[d].
func (c Info) End() core.Offset {
	end := make(core.Offset, len(c.Offset))
	for d := range c.Offset {
		end[d] = c.Offset[d] + c.Extent[d]
	}
	return end
}

// Written is a chunk plus the source identity that produced it -- the
// sourceID a planner groups by for locality-preserving strategies.
type Written struct {
	Info
	SourceID uint64
}

// Table is a chunk collection, usually the AVAILABLE_CHUNKS result of a
// RecordComponent.
type Table []Written

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	copy(out, t)
	for i := range out {
		out[i].Offset = append(core.Offset(nil), t[i].Offset...)
		out[i].Extent = append(core.Extent(nil), t[i].Extent...)
	}
	return out
}

// mergeable reports whether a and b agree on offset/extent in every
// dimension but one d, and one's offset in d equals the other's
// offset+extent in d -- the adjacency rule of spec.md §4.4.
func mergeable(a, b Info) (dim int, ok bool) {
	if len(a.Offset) != len(b.Offset) {
		return 0, false
	}
	diffDim := -1
	for d := range a.Offset {
		if a.Offset[d] == b.Offset[d] && a.Extent[d] == b.Extent[d] {
			continue
		}
		if diffDim >= 0 {
			return 0, false
		}
		diffDim = d
	}
	if diffDim < 0 {
		return 0, false
	}
	aEnd := a.Offset[diffDim] + a.Extent[diffDim]
	bEnd := b.Offset[diffDim] + b.Extent[diffDim]
	if aEnd == b.Offset[diffDim] || bEnd == a.Offset[diffDim] {
		return diffDim, true
	}
	return 0, false
}

// merge combines two mergeable chunks along dim into one.
func merge(a, b Info, dim int) Info {
	offset := append(core.Offset(nil), a.Offset...)
	extent := append(core.Extent(nil), a.Extent...)
	if a.Offset[dim] <= b.Offset[dim] {
		offset[dim] = a.Offset[dim]
	} else {
		offset[dim] = b.Offset[dim]
	}
	extent[dim] = a.Extent[dim] + b.Extent[dim]
	return Info{Offset: offset, Extent: extent}
}

// MergeChunks collapses adjacent chunks to a fixpoint per spec.md §4.4:
// merging is scoped per SourceID so a reader can still tell which writer
// produced the result of a merge. The returned table's chunk order is not
// meaningful to callers -- only its coverage is.
func MergeChunks(t Table) Table {
	bySource := map[uint64][]Info{}
	order := []uint64{}
	for _, c := range t {
		if _, ok := bySource[c.SourceID]; !ok {
			order = append(order, c.SourceID)
		}
		bySource[c.SourceID] = append(bySource[c.SourceID], c.Info)
	}

	out := make(Table, 0, len(t))
	for _, src := range order {
		merged := mergeFixpoint(bySource[src])
		for _, info := range merged {
			out = append(out, Written{Info: info, SourceID: src})
		}
	}
	return out
}

func mergeFixpoint(infos []Info) []Info {
	changed := true
	for changed {
		changed = false
	outer:
		for i := 0; i < len(infos); i++ {
			for j := i + 1; j < len(infos); j++ {
				if dim, ok := mergeable(infos[i], infos[j]); ok {
					merged := merge(infos[i], infos[j], dim)
					infos[i] = merged
					infos = append(infos[:j], infos[j+1:]...)
					changed = true
					break outer
				}
			}
		}
	}
	return infos
}

// SortByOffset orders a table lexicographically by offset -- used only to
// make test expectations and debug output deterministic; planners never
// depend on table order.
func SortByOffset(t Table) {
	sort.Slice(t, func(i, j int) bool {
		for d := range t[i].Offset {
			if t[i].Offset[d] != t[j].Offset[d] {
				return t[i].Offset[d] < t[j].Offset[d]
			}
		}
		return false
	})
}
