package openpmd

import (
	"github.com/openPMD/openpmd-go/attribute"
	"github.com/openPMD/openpmd-go/chunk"
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/xerrors"
)

// RecordComponent is the leaf of the hierarchy: a Dataset, or a Constant,
// or an Empty representation, plus whatever chunks have been queued for
// it since the last flush (spec.md §3's RecordComponent row).
type RecordComponent struct {
	base

	dataset     core.Dataset
	hasDataset  bool
	constant    *chunk.Constant
	empty       *chunk.Empty
	writtenOnce bool // true once StoreChunk has enqueued a WRITE_DATASET
	pending     chunk.Table
}

var _ childNode = (*RecordComponent)(nil)

func newRecordComponent(series *Series, parent *core.Writable, key string) *RecordComponent {
	return &RecordComponent{base: newBase(series, parent, key)}
}

// ResetDataset implements spec.md §4.1: in the CREATE direction seeds
// dtype+extent; once written, only extents may grow and dtype must match.
func (c *RecordComponent) ResetDataset(d core.Dataset) error {
	if c.constant != nil || c.empty != nil {
		return xerrors.NewInvalidOperation("cannot resetDataset on a constant/empty component")
	}
	if c.writtenOnce {
		if d.Dtype != c.dataset.Dtype {
			return xerrors.NewInvalidOperation("dtype mismatch resetting a written dataset")
		}
		if len(d.Extent) != len(c.dataset.Extent) {
			return xerrors.NewInvalidOperation("rank mismatch resetting a written dataset")
		}
		for i, old := range c.dataset.Extent {
			if d.Extent[i] < old {
				return xerrors.NewInvalidOperation("shrinking extent dimension %d on a written component", i)
			}
		}
		c.dataset = d
		c.hasDataset = true
		c.enqueue(iotask.ExtendDataset, &iotask.Parameter{Dataset: d})
		c.w.MarkDirty()
		return nil
	}
	c.dataset = d
	c.hasDataset = true
	c.enqueue(iotask.CreateDataset, &iotask.Parameter{Dataset: d})
	c.w.MarkDirty()
	return nil
}

// MakeConstant declares the component's storage to be two attributes
// (value, shape) rather than a dataset (spec.md §4.1). Subsequent chunk
// writes fail.
func (c *RecordComponent) MakeConstant(v attribute.Attribute, shape core.Extent) error {
	if c.hasDataset && c.writtenOnce {
		return xerrors.NewInvalidOperation("cannot makeConstant after the component has a written dataset")
	}
	c.constant = &chunk.Constant{Value: v, Shape: shape.Clone()}
	if err := c.SetAttribute("value", v); err != nil {
		return err
	}
	if err := c.SetAttribute("shape", attribute.VecUInt64Of(shape)); err != nil {
		return err
	}
	c.dataset = core.NewDataset(v.Dtype(), shape)
	c.hasDataset = true
	return nil
}

// MakeEmpty produces a component of the given rank whose dataset has zero
// extent in at least one dimension (spec.md §4.1); loads from it return
// zero-length buffers (testable property 11).
func (c *RecordComponent) MakeEmpty(dt attribute.Datatype, rank int) error {
	if rank < 1 {
		return xerrors.NewInvalidOperation("makeEmpty requires rank >= 1")
	}
	extent := make(core.Extent, rank)
	c.empty = &chunk.Empty{Dtype: dt, Rank: rank}
	c.dataset = core.NewDataset(dt, extent)
	c.hasDataset = true
	c.enqueue(iotask.CreateDataset, &iotask.Parameter{Dataset: c.dataset})
	c.w.MarkDirty()
	return nil
}

func (c *RecordComponent) IsConstant() bool { return c.constant != nil }
func (c *RecordComponent) IsEmpty() bool    { return c.empty != nil }
func (c *RecordComponent) Dataset() core.Dataset { return c.dataset }

// StoreChunk enqueues a WRITE_DATASET task over (offset, extent); data must
// already match the component's Dtype, validated by the caller per spec.md
// §7 ("InvalidOperation ... type/extent mismatch on chunk store/load ...
// task is not enqueued").
func (c *RecordComponent) StoreChunk(data any, offset core.Offset, extent core.Extent) error {
	if c.constant != nil {
		return xerrors.NewInvalidOperation("cannot storeChunk on a constant component")
	}
	if c.empty != nil {
		return xerrors.NewInvalidOperation("cannot storeChunk on an empty component")
	}
	if !c.hasDataset {
		return xerrors.NewInvalidOperation("storeChunk before resetDataset")
	}
	for i, e := range extent {
		if offset[i]+e > c.dataset.Extent[i] {
			return xerrors.NewInvalidOperation("chunk exceeds dataset extent in dimension %d", i)
		}
	}
	c.pending = append(c.pending, chunk.Written{
		Info:     chunk.Info{Offset: offset.Clone(), Extent: extent.Clone()},
		SourceID: 0,
	})
	c.enqueue(iotask.WriteDataset, &iotask.Parameter{
		Offset: offset, Extent: extent, Dtype: c.dataset.Dtype, Data: data,
	})
	c.writtenOnce = true
	c.w.MarkDirty()
	return nil
}

// LoadChunk enqueues a READ_DATASET task and returns the Parameter whose
// Data field the caller reads once the enclosing Series has been flushed
// (spec.md §4.2: "Output fields ... passed by shared handle"). A constant
// component never touches the backend: its value lives in attributes, so
// the requested range is synthesized here and Data is populated
// immediately (testable property 10).
func (c *RecordComponent) LoadChunk(offset core.Offset, extent core.Extent) *iotask.Parameter {
	p := &iotask.Parameter{Offset: offset, Extent: extent, Dtype: c.dataset.Dtype}
	if c.constant != nil {
		buf := make([]float64, extent.Points())
		if err := c.constant.Fill(buf, extent); err == nil {
			p.Data = buf
		}
		return p
	}
	if c.empty != nil {
		p.Data = nil // zero-length result, no enqueue necessary
		return p
	}
	c.enqueue(iotask.ReadDataset, p)
	return p
}

// AvailableChunks enqueues AVAILABLE_CHUNKS; the result Parameter's
// AvailChunks field is populated once flushed.
func (c *RecordComponent) AvailableChunks() *iotask.Parameter {
	p := &iotask.Parameter{}
	c.enqueue(iotask.AvailableChunks, p)
	return p
}

// PendingChunks returns the chunk table queued by StoreChunk since the last
// flush; Series.Flush clears it at every level except SkeletonOnly and
// CreateOrOpenFiles.
func (c *RecordComponent) PendingChunks() chunk.Table { return c.pending }

func (c *RecordComponent) clearPending() { c.pending = nil }
