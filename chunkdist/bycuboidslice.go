package chunkdist

import (
	"github.com/openPMD/openpmd-go/chunk"
	"github.com/openPMD/openpmd-go/core"
)

// ByCuboidSlice computes this rank's hyperslab via BlockSlicer, then
// intersects every incoming chunk against it (spec.md §4.4's intersection
// rule), keeping only non-empty intersections.
type ByCuboidSlice struct {
	Slicer      BlockSlicer
	TotalExtent core.Extent
	MyRank      uint32
	Size        int
}

// Intersect computes the overlap of two hyperslabs per the §4.4 rule:
// newOffset = max(aOffset, bOffset); newExtent = max(0, min(aEnd,bEnd) -
// newOffset). ok is false if any dimension's resulting extent is zero.
func Intersect(a chunk.Info, bOffset core.Offset, bExtent core.Extent) (chunk.Info, bool) {
	n := len(a.Offset)
	offset := make(core.Offset, n)
	extent := make(core.Extent, n)
	for d := 0; d < n; d++ {
		newOffset := a.Offset[d]
		if bOffset[d] > newOffset {
			newOffset = bOffset[d]
		}
		aEnd := a.Offset[d] + a.Extent[d]
		bEnd := bOffset[d] + bExtent[d]
		end := aEnd
		if bEnd < end {
			end = bEnd
		}
		if end <= newOffset {
			return chunk.Info{}, false
		}
		offset[d] = newOffset
		extent[d] = end - newOffset
	}
	return chunk.Info{Offset: offset, Extent: extent}, true
}

func (c ByCuboidSlice) Assign(p PartialAssignment, _, _ RankMeta) (Assignment, error) {
	sliceOffset, sliceExtent := c.Slicer.Slice(c.TotalExtent, c.Size, int(c.MyRank))
	result := mergeAssignment(Assignment{}, p.Assigned)
	for _, wc := range p.NotAssigned {
		inter, ok := Intersect(wc.Info, sliceOffset, sliceExtent)
		if !ok {
			continue
		}
		result[c.MyRank] = append(result[c.MyRank], chunk.Written{Info: inter, SourceID: wc.SourceID})
	}
	recordMetrics("ByCuboidSlice", result)
	return result, nil
}
