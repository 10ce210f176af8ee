package openpmd

import (
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/xerrors"
)

// PatchRecordComponent is a 1-D dataset indexed by patch id, homogeneous
// in datatype per owning PatchRecord (spec.md §3's PatchRecord row).
type PatchRecordComponent struct {
	base
	dataset    core.Dataset
	hasDataset bool
}

var _ childNode = (*PatchRecordComponent)(nil)

func newPatchRecordComponent(series *Series, parent *core.Writable, key string) *PatchRecordComponent {
	return &PatchRecordComponent{base: newBase(series, parent, key)}
}

// Reset seeds the 1-D dataset sized to the number of patches.
func (c *PatchRecordComponent) Reset(d core.Dataset) error {
	if len(d.Extent) != 1 {
		return xerrors.NewInvalidOperation("PatchRecordComponent dataset must be rank 1")
	}
	c.dataset = d
	c.hasDataset = true
	c.enqueue(iotask.CreateDataset, &iotask.Parameter{Dataset: d})
	c.w.MarkDirty()
	return nil
}

// Store writes one patch's value at patchID.
func (c *PatchRecordComponent) Store(patchID uint64, data any) error {
	if !c.hasDataset {
		return xerrors.NewInvalidOperation("store before Reset on PatchRecordComponent")
	}
	if patchID >= c.dataset.Extent[0] {
		return xerrors.NewInvalidOperation("patch id %d out of range", patchID)
	}
	c.enqueue(iotask.WriteDataset, &iotask.Parameter{
		Offset: core.Offset{patchID}, Extent: core.Extent{1}, Dtype: c.dataset.Dtype, Data: data,
	})
	c.w.MarkDirty()
	return nil
}

// PatchRecord is Container<PatchRecordComponent>, same lifetime as its
// owning ParticleSpecies.
type PatchRecord struct {
	*Container[*PatchRecordComponent]
}

var _ childNode = PatchRecord{}

func newPatchRecord(series *Series, parent *core.Writable, key string) PatchRecord {
	return PatchRecord{Container: newContainer(series, parent, key, newPatchRecordComponent)}
}

func (p PatchRecord) Writable() *core.Writable { return p.Container.Writable() }
