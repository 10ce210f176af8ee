package chunkdist

import (
	"sort"

	"github.com/OneOfOne/xxhash"

	"github.com/openPMD/openpmd-go/chunk"
)

// ByHostname groups chunks by source hostname; for each group with a
// same-hostname output rank present, the inner strategy distributes that
// group's chunks among those same-host ranks. Groups with no matching
// output host fall through as leftovers for a following strategy.
type ByHostname struct {
	Within Strategy
}

func (b ByHostname) AssignPartial(p PartialAssignment, in, out RankMeta) (PartialAssignment, error) {
	hostToOutRanks := map[string]RankMeta{}
	for rank, host := range out {
		if hostToOutRanks[host] == nil {
			hostToOutRanks[host] = RankMeta{}
		}
		hostToOutRanks[host][rank] = host
	}

	byHost := map[string]chunk.Table{}
	for _, c := range p.NotAssigned {
		host := in[uint32(c.SourceID)]
		byHost[host] = append(byHost[host], c)
	}

	// Hosts are visited in xxhash order rather than Go's randomized map
	// order, so two runs over the same input partition deterministically
	// the same way -- the same fast-stable-key role core.Writable.idHash
	// plays for node identity.
	hosts := make([]string, 0, len(byHost))
	for host := range byHost {
		hosts = append(hosts, host)
	}
	sort.Slice(hosts, func(i, j int) bool {
		return xxhash.ChecksumString64(hosts[i]) < xxhash.ChecksumString64(hosts[j])
	})

	result := mergeAssignment(Assignment{}, p.Assigned)
	var leftover chunk.Table
	for _, host := range hosts {
		chunks := byHost[host]
		sameHost, ok := hostToOutRanks[host]
		if !ok {
			leftover = append(leftover, chunks...)
			continue
		}
		inner, err := b.Within.Assign(PartialAssignment{NotAssigned: chunks}, in, sameHost)
		if err != nil {
			return PartialAssignment{}, err
		}
		result = mergeAssignment(result, inner)
	}
	return PartialAssignment{NotAssigned: leftover, Assigned: result}, nil
}
