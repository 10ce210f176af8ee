package openpmd

import (
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/xerrors"
)

// ParticleSpecies is Container<Record> plus ParticlePatches (spec.md §3's
// ParticleSpecies row). Reserved records "position"/"positionOffset" must
// be scalar-vector with matching dims when both are present.
type ParticleSpecies struct {
	*Container[Record]
	patches *Container[PatchRecord]
}

var _ childNode = ParticleSpecies{}

func newParticleSpecies(series *Series, parent *core.Writable, key string) ParticleSpecies {
	return ParticleSpecies{
		Container: newContainer(series, parent, key, newRecord),
		patches:   newContainer(series, parent, key+"/particlePatches", newPatchRecord),
	}
}

func (s ParticleSpecies) Writable() *core.Writable { return s.Container.Writable() }

func (s ParticleSpecies) Record(name string) Record { return s.Get(name) }

func (s ParticleSpecies) ParticlePatches() *Container[PatchRecord] { return s.patches }

// ValidatePositionDims enforces spec.md §3's invariant: when both
// "position" and "positionOffset" exist, their component counts must
// match (both represent the same spatial dimensionality).
func (s ParticleSpecies) ValidatePositionDims() error {
	if !s.Contains("position") || !s.Contains("positionOffset") {
		return nil
	}
	pos := s.Get("position")
	off := s.Get("positionOffset")
	if pos.IsScalar() != off.IsScalar() {
		return xerrors.NewInvalidOperation("position and positionOffset must have matching scalar/vector shape")
	}
	if !pos.IsScalar() && pos.Len() != off.Len() {
		return xerrors.NewInvalidOperation("position and positionOffset must have matching dimensionality")
	}
	return nil
}
