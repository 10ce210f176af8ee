// Package groupcomm is the collective-communication abstraction spec.md
// §5 requires for MPI-style usage ("all communication is collective"):
// rank-table gathering, hostname collection, and the chunk-table transfer
// a reader population needs to learn what a writer population produced.
// Generalizes the teacher's rank-to-rank gossip (bundle.DataMover /
// transport streams) down to the single request/response shape openPMD
// collectives need.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package groupcomm

import (
	"context"

	"github.com/openPMD/openpmd-go/chunk"
)

// Method names a hostname-acquisition strategy (spec.md §4.4).
type Method int

const (
	MethodPOSIXHostname Method = iota
	MethodMPIProcessorName
)

func (m Method) String() string {
	if m == MethodMPIProcessorName {
		return "MPI_PROCESSOR_NAME"
	}
	return "POSIX_HOSTNAME"
}

// Communicator is the collective surface a Series needs: gathering every
// rank's hostname into a shared RankMeta, and exchanging chunk tables
// between a writer and a reader population.
type Communicator interface {
	Rank() uint32
	Size() int

	// AllGatherHostnames is collective: every rank supplies its own
	// hostname and every rank receives the complete map.
	AllGatherHostnames(ctx context.Context, method Method) (map[uint32]string, error)

	// AllGatherChunks is collective: every rank contributes its local
	// chunk table and every rank receives the union.
	AllGatherChunks(ctx context.Context, local chunk.Table) (chunk.Table, error)

	// Barrier blocks until every rank has called it.
	Barrier(ctx context.Context) error
}
