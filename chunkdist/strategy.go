package chunkdist

import (
	"sort"
	"strconv"

	"github.com/openPMD/openpmd-go/chunk"
	"github.com/openPMD/openpmd-go/metrics"
	"github.com/openPMD/openpmd-go/xerrors"
)

// recordMetrics publishes the assigned-chunks gauge per rank, for
// whichever strategy just ran.
func recordMetrics(strategyName string, result Assignment) {
	for rank, table := range result {
		metrics.ChunksAssigned.WithLabelValues(strategyName, strconv.FormatUint(uint64(rank), 10)).Set(float64(len(table)))
	}
}

// RankMeta maps a rank to an opaque locality tag -- ordinarily a hostname.
type RankMeta map[uint32]string

// Assignment is the planner's result: each output rank's chunk list.
type Assignment map[uint32]chunk.Table

// PartialAssignment is the intermediate result a PartialStrategy may
// leave: some chunks assigned, some not yet.
type PartialAssignment struct {
	NotAssigned chunk.Table
	Assigned    Assignment
}

// Strategy maps a PartialAssignment plus the in/out RankMeta to a final
// Assignment; it must not leave any chunk unaccounted for except when it
// explicitly discards leftovers (DiscardingStrategy).
type Strategy interface {
	Assign(p PartialAssignment, in, out RankMeta) (Assignment, error)
}

// PartialStrategy may leave some chunks unassigned, to be resolved by a
// following Strategy via FromPartialStrategy.
type PartialStrategy interface {
	AssignPartial(p PartialAssignment, in, out RankMeta) (PartialAssignment, error)
}

// chained composes a PartialStrategy followed by a terminal Strategy.
type chained struct {
	first  PartialStrategy
	second Strategy
}

func FromPartialStrategy(first PartialStrategy, second Strategy) Strategy {
	return chained{first: first, second: second}
}

func (c chained) Assign(p PartialAssignment, in, out RankMeta) (Assignment, error) {
	mid, err := c.first.AssignPartial(p, in, out)
	if err != nil {
		return nil, err
	}
	return c.second.Assign(mid, in, out)
}

// sortedRanks returns the keys of out in ascending order, for strategies
// whose output is defined in terms of "cyclic order of iteration over out".
func sortedRanks(out RankMeta) []uint32 {
	ranks := make([]uint32, 0, len(out))
	for r := range out {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })
	return ranks
}

func mergeAssignment(base Assignment, extra Assignment) Assignment {
	if base == nil {
		base = Assignment{}
	}
	for rank, table := range extra {
		base[rank] = append(base[rank], table...)
	}
	return base
}

// RoundRobin assigns chunks to output ranks in cyclic order of iteration
// over out.
type RoundRobin struct{}

func (RoundRobin) Assign(p PartialAssignment, _ RankMeta, out RankMeta) (Assignment, error) {
	ranks := sortedRanks(out)
	if len(ranks) == 0 {
		return nil, xerrors.NewWrongAPIUsage("RoundRobin: empty output rank set")
	}
	result := mergeAssignment(Assignment{}, p.Assigned)
	for i, c := range p.NotAssigned {
		rank := ranks[i%len(ranks)]
		result[rank] = append(result[rank], c)
	}
	recordMetrics("RoundRobin", result)
	return result, nil
}

// RoundRobinOfSourceRanks groups source chunks by SourceID and distributes
// whole groups round-robin, preserving per-source locality.
type RoundRobinOfSourceRanks struct{}

func (RoundRobinOfSourceRanks) Assign(p PartialAssignment, _ RankMeta, out RankMeta) (Assignment, error) {
	ranks := sortedRanks(out)
	if len(ranks) == 0 {
		return nil, xerrors.NewWrongAPIUsage("RoundRobinOfSourceRanks: empty output rank set")
	}
	order := []uint64{}
	bySource := map[uint64]chunk.Table{}
	for _, c := range p.NotAssigned {
		if _, ok := bySource[c.SourceID]; !ok {
			order = append(order, c.SourceID)
		}
		bySource[c.SourceID] = append(bySource[c.SourceID], c)
	}
	result := mergeAssignment(Assignment{}, p.Assigned)
	for i, src := range order {
		rank := ranks[i%len(ranks)]
		result[rank] = append(result[rank], bySource[src]...)
	}
	recordMetrics("RoundRobinOfSourceRanks", result)
	return result, nil
}

// Blocks assigns this rank its contiguous block of the chunk list,
// computed via BlockPartition.
type Blocks struct {
	MyRank uint32
	Size   int
}

func (b Blocks) Assign(p PartialAssignment, _ RankMeta, _ RankMeta) (Assignment, error) {
	begin, end := BlockPartition(uint64(len(p.NotAssigned)), b.Size, int(b.MyRank))
	result := mergeAssignment(Assignment{}, p.Assigned)
	result[b.MyRank] = append(result[b.MyRank], p.NotAssigned[begin:end]...)
	recordMetrics("Blocks", result)
	return result, nil
}

// BlocksOfSourceRanks is Blocks but partitioning over the set of distinct
// SourceIDs rather than the raw chunk list.
type BlocksOfSourceRanks struct {
	MyRank uint32
	Size   int
}

func (b BlocksOfSourceRanks) Assign(p PartialAssignment, _ RankMeta, _ RankMeta) (Assignment, error) {
	order := []uint64{}
	bySource := map[uint64]chunk.Table{}
	for _, c := range p.NotAssigned {
		if _, ok := bySource[c.SourceID]; !ok {
			order = append(order, c.SourceID)
		}
		bySource[c.SourceID] = append(bySource[c.SourceID], c)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	begin, end := BlockPartition(uint64(len(order)), b.Size, int(b.MyRank))
	result := mergeAssignment(Assignment{}, p.Assigned)
	for _, src := range order[begin:end] {
		result[b.MyRank] = append(result[b.MyRank], bySource[src]...)
	}
	recordMetrics("BlocksOfSourceRanks", result)
	return result, nil
}

// FailingStrategy is a terminal Strategy that errors if any leftovers
// remain after the prior PartialStrategy ran.
type FailingStrategy struct{}

func (FailingStrategy) Assign(p PartialAssignment, _, _ RankMeta) (Assignment, error) {
	if len(p.NotAssigned) > 0 {
		return nil, xerrors.NewWrongAPIUsage("FailingStrategy: %d chunks left unassigned", len(p.NotAssigned))
	}
	recordMetrics("FailingStrategy", p.Assigned)
	return p.Assigned, nil
}

// DiscardingStrategy is a terminal Strategy that silently drops leftovers.
type DiscardingStrategy struct{}

func (DiscardingStrategy) Assign(p PartialAssignment, _, _ RankMeta) (Assignment, error) {
	recordMetrics("DiscardingStrategy", p.Assigned)
	return p.Assigned, nil
}
