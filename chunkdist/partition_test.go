package chunkdist

import (
	"testing"

	"github.com/openPMD/openpmd-go/core"
)

func TestBlockPartitionCoversWithoutGapOrOverlap(t *testing.T) {
	for _, length := range []uint64{0, 1, 7, 10, 17, 100} {
		for _, n := range []int{1, 2, 3, 5} {
			var prevEnd uint64
			for k := 0; k < n; k++ {
				begin, end := BlockPartition(length, n, k)
				if begin != prevEnd {
					t.Fatalf("length=%d n=%d k=%d: begin=%d, want %d (previous end)", length, n, k, begin, prevEnd)
				}
				if end < begin {
					t.Fatalf("length=%d n=%d k=%d: end %d < begin %d", length, n, k, end, begin)
				}
				prevEnd = end
			}
			if prevEnd != length {
				t.Fatalf("length=%d n=%d: partition covers %d, want %d", length, n, prevEnd, length)
			}
		}
	}
}

func TestBlockPartitionBalanced(t *testing.T) {
	// no bin may differ from another by more than 1 element.
	const length, n = uint64(17), 5
	sizes := make([]uint64, n)
	for k := 0; k < n; k++ {
		begin, end := BlockPartition(length, n, k)
		sizes[k] = end - begin
	}
	var min, max uint64 = sizes[0], sizes[0]
	for _, s := range sizes {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	if max-min > 1 {
		t.Fatalf("bin sizes %v differ by more than 1", sizes)
	}
}

func TestOneDimensionalBlockSlicer(t *testing.T) {
	s := OneDimensionalBlockSlicer{Dim: 1}
	total := core.Extent{4, 10}
	offset, extent := s.Slice(total, 2, 0)
	if offset[0] != 0 || offset[1] != 0 {
		t.Errorf("rank 0 offset = %v, want [0 0]", offset)
	}
	if extent[0] != 4 || extent[1] != 5 {
		t.Errorf("rank 0 extent = %v, want [4 5]", extent)
	}
	offset2, extent2 := s.Slice(total, 2, 1)
	if offset2[1] != 5 || extent2[1] != 5 {
		t.Errorf("rank 1 slice = offset %v extent %v, want offset[1]=5 extent[1]=5", offset2, extent2)
	}
}
