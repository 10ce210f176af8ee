package openpmd

import (
	"github.com/openPMD/openpmd-go/attribute"
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/xerrors"
)

// Mesh is Container<RecordComponent> (or a single scalar component),
// carrying geometry/axisLabels/gridSpacing/gridGlobalOffset/gridUnitSI
// (spec.md §3's Mesh row).
type Mesh struct {
	*Container[*RecordComponent]
}

var _ childNode = Mesh{}

func newMesh(series *Series, parent *core.Writable, key string) Mesh {
	return Mesh{Container: newContainer(series, parent, key, newRecordComponent)}
}

func (m Mesh) Writable() *core.Writable { return m.Container.Writable() }

func (m Mesh) IsScalar() bool                   { return m.Contains(scalarKey) }
func (m Mesh) ScalarComponent() *RecordComponent { return m.Get(scalarKey) }
func (m Mesh) Component(axis string) *RecordComponent { return m.Get(axis) }

// SetGeometry validates and stores the mesh geometry enum.
func (m Mesh) SetGeometry(geometry string) error {
	return m.SetAttribute("geometry", attribute.StringOf(geometry))
}

// SetAxisLabels validates axisLabels length against the component rank
// once known (spec.md §3: "axisLabels length = rank"); rank 0 (unknown
// yet) skips the check.
func (m Mesh) SetAxisLabels(labels []string, rank int) error {
	if rank > 0 && len(labels) != rank {
		return xerrors.NewInvalidOperation("axisLabels length %d does not match mesh rank %d", len(labels), rank)
	}
	return m.SetAttribute("axisLabels", attribute.VecStringOf(labels))
}

func (m Mesh) SetGridSpacing(v []float64) error {
	return m.SetAttribute("gridSpacing", attribute.VecFloat64Of(v))
}

func (m Mesh) SetGridGlobalOffset(v []float64) error {
	return m.SetAttribute("gridGlobalOffset", attribute.VecFloat64Of(v))
}

func (m Mesh) SetGridUnitSI(v float64) error {
	return m.SetAttribute("gridUnitSI", attribute.Float64Of(v))
}

// SetUnitDimension validates the fixed 7-tuple cardinality (spec.md §3:
// "unitDimension length = 7").
func (m Mesh) SetUnitDimension(v [7]float64) error {
	return m.SetAttribute("unitDimension", attribute.UnitDimensionOf(v))
}
