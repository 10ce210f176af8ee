package chunkdist

import (
	"sort"

	"github.com/openPMD/openpmd-go/chunk"
	"github.com/openPMD/openpmd-go/core"
)

// BinPacking implements spec.md §4.4's two-pass greedy bin packer: split
// chunks along SplitAlongDim into pieces of size <= ideal, sort by
// decreasing size, then run a budgeted first-fit pass followed by a pass
// that puts each leftover piece on the least-loaded rank, so every rank
// ends up within a factor-2 approximation of optimal (testable property 6).
type BinPacking struct {
	SplitAlongDim int
}

type piece struct {
	chunk.Written
}

func (b BinPacking) Assign(p PartialAssignment, _, out RankMeta) (Assignment, error) {
	ranks := sortedRanks(out)
	if len(ranks) == 0 {
		return nil, nil
	}

	total := uint64(0)
	for _, c := range p.NotAssigned {
		total += c.Points()
	}
	ideal := total / uint64(len(ranks))
	if ideal == 0 {
		ideal = 1
	}

	pieces := splitChunks(p.NotAssigned, b.SplitAlongDim, ideal)
	sort.Slice(pieces, func(i, j int) bool { return pieces[i].Points() > pieces[j].Points() })

	result := mergeAssignment(Assignment{}, p.Assigned)
	budgets := make(map[uint32]uint64, len(ranks))
	loads := make(map[uint32]uint64, len(ranks))
	for _, r := range ranks {
		budgets[r] = ideal
	}

	// pass 0: first-fit-decreasing, each piece only onto a rank with
	// enough remaining budget.
	assigned := make([]bool, len(pieces))
	for _, r := range ranks {
		for i, pc := range pieces {
			if assigned[i] || pc.Points() > budgets[r] {
				continue
			}
			result[r] = append(result[r], pc.Written)
			budgets[r] -= pc.Points()
			loads[r] += pc.Points()
			assigned[i] = true
		}
	}
	// pass 1: every leftover piece still needs a home, but dumping them
	// all on one rank would blow the factor-2 bound as leftover count
	// grows with rank count. Run longest-processing-time-first instead:
	// each leftover goes to whichever rank currently carries the least
	// load, so leftovers spread out the same way pass 0's budget did.
	for i, pc := range pieces {
		if assigned[i] {
			continue
		}
		r := ranks[0]
		for _, cand := range ranks[1:] {
			if loads[cand] < loads[r] {
				r = cand
			}
		}
		result[r] = append(result[r], pc.Written)
		loads[r] += pc.Points()
		assigned[i] = true
	}
	recordMetrics("BinPacking", result)
	return result, nil
}

// splitChunks divides each chunk along dim into consecutive pieces of
// extent <= ideal along that dimension (the final piece may be smaller).
func splitChunks(t chunk.Table, dim int, ideal uint64) []piece {
	var out []piece
	for _, c := range t {
		dimExtent := c.Extent[dim]
		perSlice := core.Extent(c.Extent).Points() / dimExtent // product of the other dims
		if perSlice == 0 {
			perSlice = 1
		}
		step := ideal / perSlice
		if step == 0 {
			step = 1
		}
		for start := uint64(0); start < dimExtent; start += step {
			end := start + step
			if end > dimExtent {
				end = dimExtent
			}
			offset := append(core.Offset(nil), c.Offset...)
			extent := append(core.Extent(nil), c.Extent...)
			offset[dim] = c.Offset[dim] + start
			extent[dim] = end - start
			out = append(out, piece{chunk.Written{
				Info:     chunk.Info{Offset: offset, Extent: extent},
				SourceID: c.SourceID,
			}})
		}
	}
	return out
}
