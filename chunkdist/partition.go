// Package chunkdist implements the chunk-assignment planner of spec.md
// §4.4-§4.5: the algorithm that distributes a writer's chunk table across
// a (possibly differently-sized) reader population.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package chunkdist

import "github.com/openPMD/openpmd-go/core"

// BlockPartition computes bin k's half-open interval [f(k), f(k+1)) of the
// deterministic, minimum-imbalance partition of length L into n bins
// (spec.md §4.5): f(k) = (L/n)*k + ceil(((L mod n) * k) / n).
func BlockPartition(length uint64, n, k int) (begin, end uint64) {
	f := func(k int) uint64 {
		kk := uint64(k)
		base := (length / uint64(n)) * kk
		rem := length % uint64(n)
		num := rem * kk
		ceil := num / uint64(n)
		if num%uint64(n) != 0 {
			ceil++
		}
		return base + ceil
	}
	return f(k), f(k + 1)
}

// BlockSlicer computes this rank's hyperslab of totalExtent.
type BlockSlicer interface {
	Slice(totalExtent core.Extent, size, rank int) (core.Offset, core.Extent)
}

// OneDimensionalBlockSlicer applies BlockPartition to totalExtent[Dim] and
// leaves every other dimension unsliced.
type OneDimensionalBlockSlicer struct {
	Dim int
}

func (s OneDimensionalBlockSlicer) Slice(totalExtent core.Extent, size, rank int) (core.Offset, core.Extent) {
	offset := make(core.Offset, len(totalExtent))
	extent := totalExtent.Clone()
	begin, end := BlockPartition(totalExtent[s.Dim], size, rank)
	offset[s.Dim] = begin
	extent[s.Dim] = end - begin
	return offset, extent
}
