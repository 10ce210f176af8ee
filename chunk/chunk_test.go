package chunk

import (
	"testing"

	"github.com/openPMD/openpmd-go/core"
)

func TestMergeChunksAdjacentSameDim(t *testing.T) {
	table := Table{
		{Info: Info{Offset: core.Offset{0, 0}, Extent: core.Extent{5, 10}}, SourceID: 1},
		{Info: Info{Offset: core.Offset{5, 0}, Extent: core.Extent{5, 10}}, SourceID: 1},
	}
	merged := MergeChunks(table)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged chunk, got %d: %+v", len(merged), merged)
	}
	want := Info{Offset: core.Offset{0, 0}, Extent: core.Extent{10, 10}}
	got := merged[0].Info
	if !got.Extent.Equal(want.Extent) || got.Offset[0] != want.Offset[0] || got.Offset[1] != want.Offset[1] {
		t.Errorf("merged = %+v, want %+v", got, want)
	}
}

func TestMergeChunksNotAdjacentDisagreesTwoDims(t *testing.T) {
	table := Table{
		{Info: Info{Offset: core.Offset{0, 0}, Extent: core.Extent{5, 5}}, SourceID: 1},
		{Info: Info{Offset: core.Offset{5, 5}, Extent: core.Extent{5, 5}}, SourceID: 1},
	}
	merged := MergeChunks(table)
	if len(merged) != 2 {
		t.Fatalf("expected no merge (disjoint in 2 dims), got %d chunks", len(merged))
	}
}

func TestMergeChunksScopedPerSource(t *testing.T) {
	table := Table{
		{Info: Info{Offset: core.Offset{0}, Extent: core.Extent{5}}, SourceID: 1},
		{Info: Info{Offset: core.Offset{5}, Extent: core.Extent{5}}, SourceID: 2},
	}
	merged := MergeChunks(table)
	if len(merged) != 2 {
		t.Fatalf("expected chunks from different sources to never merge, got %d", len(merged))
	}
}

func TestMergeChunksFixpointChain(t *testing.T) {
	// three chunks that only collapse to one transitively: (10-15) + (5-10)
	// merges first, then the result (5-15) merges with (0-5).
	table := Table{
		{Info: Info{Offset: core.Offset{10}, Extent: core.Extent{5}}, SourceID: 1},
		{Info: Info{Offset: core.Offset{0}, Extent: core.Extent{5}}, SourceID: 1},
		{Info: Info{Offset: core.Offset{5}, Extent: core.Extent{5}}, SourceID: 1},
	}
	merged := MergeChunks(table)
	if len(merged) != 1 {
		t.Fatalf("expected fixpoint to fully collapse the chain, got %d chunks: %+v", len(merged), merged)
	}
	if merged[0].Extent[0] != 15 || merged[0].Offset[0] != 0 {
		t.Errorf("merged = %+v, want offset 0 extent 15", merged[0])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := Table{{Info: Info{Offset: core.Offset{1}, Extent: core.Extent{2}}, SourceID: 7}}
	clone := orig.Clone()
	clone[0].Offset[0] = 99
	if orig[0].Offset[0] == 99 {
		t.Fatal("Clone shares backing array with the original table")
	}
}

func TestSortByOffset(t *testing.T) {
	table := Table{
		{Info: Info{Offset: core.Offset{5}, Extent: core.Extent{1}}},
		{Info: Info{Offset: core.Offset{1}, Extent: core.Extent{1}}},
		{Info: Info{Offset: core.Offset{3}, Extent: core.Extent{1}}},
	}
	SortByOffset(table)
	for i := 1; i < len(table); i++ {
		if table[i-1].Offset[0] > table[i].Offset[0] {
			t.Fatalf("table not sorted: %+v", table)
		}
	}
}

func TestInfoPointsAndEnd(t *testing.T) {
	c := Info{Offset: core.Offset{2, 3}, Extent: core.Extent{4, 5}}
	if got := c.Points(); got != 20 {
		t.Errorf("Points() = %d, want 20", got)
	}
	end := c.End()
	if end[0] != 6 || end[1] != 8 {
		t.Errorf("End() = %+v, want [6 8]", end)
	}
}
