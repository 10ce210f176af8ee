package chunkdist

import (
	"testing"

	"github.com/openPMD/openpmd-go/chunk"
	"github.com/openPMD/openpmd-go/core"
)

func TestIntersectOverlapping(t *testing.T) {
	a := chunk.Info{Offset: core.Offset{0, 0}, Extent: core.Extent{10, 10}}
	inter, ok := Intersect(a, core.Offset{5, 5}, core.Extent{10, 10})
	if !ok {
		t.Fatal("expected an overlap")
	}
	if inter.Offset[0] != 5 || inter.Offset[1] != 5 {
		t.Errorf("offset = %v, want [5 5]", inter.Offset)
	}
	if inter.Extent[0] != 5 || inter.Extent[1] != 5 {
		t.Errorf("extent = %v, want [5 5]", inter.Extent)
	}
}

func TestIntersectDisjoint(t *testing.T) {
	a := chunk.Info{Offset: core.Offset{0}, Extent: core.Extent{5}}
	if _, ok := Intersect(a, core.Offset{10}, core.Extent{5}); ok {
		t.Fatal("expected no overlap between disjoint ranges")
	}
}

func TestIntersectTouchingIsDisjoint(t *testing.T) {
	// [0,5) and [5,10) touch at the boundary but share no points.
	a := chunk.Info{Offset: core.Offset{0}, Extent: core.Extent{5}}
	if _, ok := Intersect(a, core.Offset{5}, core.Extent{5}); ok {
		t.Fatal("touching ranges should not count as an overlap")
	}
}

func TestByCuboidSliceKeepsOnlyOverlap(t *testing.T) {
	total := core.Extent{10}
	strat := ByCuboidSlice{Slicer: OneDimensionalBlockSlicer{Dim: 0}, TotalExtent: total, MyRank: 0, Size: 2}
	table := chunk.Table{
		{Info: chunk.Info{Offset: core.Offset{0}, Extent: core.Extent{10}}, SourceID: 1},
	}
	result, err := strat.Assign(PartialAssignment{NotAssigned: table}, nil, nil)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	got := result[0]
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 intersected chunk, got %d", len(got))
	}
	if got[0].Extent[0] != 5 {
		t.Errorf("rank 0's half of a 10-wide dataset should be 5 wide, got %d", got[0].Extent[0])
	}
}
