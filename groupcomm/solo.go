package groupcomm

import (
	"context"
	"os"

	"github.com/openPMD/openpmd-go/chunk"
)

// Solo is the single-rank Communicator used outside any MPI context: rank
// 0 of size 1, every collective a local no-op.
type Solo struct{}

var _ Communicator = Solo{}

func (Solo) Rank() uint32 { return 0 }
func (Solo) Size() int    { return 1 }

func (Solo) AllGatherHostnames(_ context.Context, _ Method) (map[uint32]string, error) {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	return map[uint32]string{0: host}, nil
}

func (Solo) AllGatherChunks(_ context.Context, local chunk.Table) (chunk.Table, error) {
	return local, nil
}

func (Solo) Barrier(_ context.Context) error { return nil }
