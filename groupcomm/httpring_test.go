package groupcomm

import (
	"context"
	"net"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/openPMD/openpmd-go/chunk"
	"github.com/openPMD/openpmd-go/core"
)

// ringFixture boots a real HTTP listener per rank, each backed by Handler
// wired to that rank's own HTTPRing, so AllGatherHostnames/AllGatherChunks/
// Barrier exercise the genuine multi-hop relay chain rather than a single
// hop between two in-process structs.
type ringFixture struct {
	rings     []*HTTPRing
	listeners []net.Listener
}

func newRingFixture(t *testing.T, size int, chunksFor func(rank uint32) chunk.Table) *ringFixture {
	t.Helper()

	listeners := make([]net.Listener, size)
	endpoints := make([]string, size)
	for i := 0; i < size; i++ {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("listen rank %d: %v", i, err)
		}
		listeners[i] = ln
		endpoints[i] = "http://" + ln.Addr().String()
	}

	rings := make([]*HTTPRing, size)
	for i := 0; i < size; i++ {
		rings[i] = NewHTTPRing(uint32(i), endpoints)
	}

	for i := 0; i < size; i++ {
		rank := uint32(i)
		srv := &fasthttp.Server{
			Handler: Handler(rings[i], func() chunk.Table {
				if chunksFor == nil {
					return nil
				}
				return chunksFor(rank)
			}),
		}
		go srv.Serve(listeners[i])
	}

	f := &ringFixture{rings: rings, listeners: listeners}
	t.Cleanup(f.close)
	return f
}

func (f *ringFixture) close() {
	for _, ln := range f.listeners {
		ln.Close()
	}
}

func TestHTTPRingAllGatherHostnamesWalksEveryRank(t *testing.T) {
	const size = 4
	f := newRingFixture(t, size, nil)

	hosts, err := f.rings[0].AllGatherHostnames(context.Background(), MethodPOSIXHostname)
	if err != nil {
		t.Fatalf("AllGatherHostnames: %v", err)
	}
	if len(hosts) != size {
		t.Fatalf("got %d hostnames, want %d (ring size > 2 must not stop at the immediate successor)", len(hosts), size)
	}
	for rank := uint32(0); rank < size; rank++ {
		if _, ok := hosts[rank]; !ok {
			t.Errorf("missing hostname for rank %d", rank)
		}
	}
}

func TestHTTPRingAllGatherChunksUnionsEveryRank(t *testing.T) {
	const size = 3
	chunksFor := func(rank uint32) chunk.Table {
		return chunk.Table{{
			Info:     chunk.Info{Offset: core.Offset{uint64(rank)}, Extent: core.Extent{1}},
			SourceID: uint64(rank),
		}}
	}
	f := newRingFixture(t, size, chunksFor)

	local := chunksFor(0)
	got, err := f.rings[0].AllGatherChunks(context.Background(), local)
	if err != nil {
		t.Fatalf("AllGatherChunks: %v", err)
	}
	if len(got) != size {
		t.Fatalf("got %d chunks, want %d (every rank's local contribution must appear)", len(got), size)
	}
	seen := map[uint64]bool{}
	for _, c := range got {
		seen[c.SourceID] = true
	}
	for rank := uint64(0); rank < size; rank++ {
		if !seen[rank] {
			t.Errorf("missing chunk contributed by rank %d", rank)
		}
	}
}

func TestHTTPRingBarrierCompletesAcrossRing(t *testing.T) {
	const size = 3
	f := newRingFixture(t, size, nil)

	if err := f.rings[0].Barrier(context.Background()); err != nil {
		t.Fatalf("Barrier: %v", err)
	}
}

func TestHTTPRingSizeOneSkipsNetwork(t *testing.T) {
	r := NewHTTPRing(0, []string{"http://127.0.0.1:0"})
	hosts, err := r.AllGatherHostnames(context.Background(), MethodPOSIXHostname)
	if err != nil {
		t.Fatalf("AllGatherHostnames: %v", err)
	}
	if len(hosts) != 1 {
		t.Fatalf("got %d hostnames, want 1", len(hosts))
	}
	if err := r.Barrier(context.Background()); err != nil {
		t.Fatalf("Barrier: %v", err)
	}
}
