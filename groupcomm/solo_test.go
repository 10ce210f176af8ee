package groupcomm

import (
	"context"
	"testing"

	"github.com/openPMD/openpmd-go/chunk"
	"github.com/openPMD/openpmd-go/core"
)

func TestSoloIsRankZeroOfOne(t *testing.T) {
	var s Solo
	if s.Rank() != 0 {
		t.Errorf("Rank() = %d, want 0", s.Rank())
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d, want 1", s.Size())
	}
}

func TestSoloAllGatherHostnamesReturnsSelf(t *testing.T) {
	var s Solo
	hosts, err := s.AllGatherHostnames(context.Background(), MethodPOSIXHostname)
	if err != nil {
		t.Fatalf("AllGatherHostnames: %v", err)
	}
	if _, ok := hosts[0]; !ok {
		t.Errorf("expected an entry for rank 0, got %v", hosts)
	}
}

func TestSoloAllGatherChunksIsIdentity(t *testing.T) {
	var s Solo
	local := chunk.Table{{Info: chunk.Info{Offset: core.Offset{0}, Extent: core.Extent{1}}, SourceID: 1}}
	got, err := s.AllGatherChunks(context.Background(), local)
	if err != nil {
		t.Fatalf("AllGatherChunks: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1", len(got))
	}
}

func TestSoloBarrierNoOp(t *testing.T) {
	var s Solo
	if err := s.Barrier(context.Background()); err != nil {
		t.Errorf("Barrier: %v", err)
	}
}
