package chunk

import (
	"github.com/openPMD/openpmd-go/attribute"
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/xerrors"
)

// Constant is the physical representation chosen by RecordComponent's
// makeConstant (spec.md §4.1): a single value standing in for every point
// of shape, stored as attributes rather than a dataset. Loading any
// sub-range returns a buffer filled with Value.
type Constant struct {
	Value attribute.Attribute
	Shape core.Extent
}

// Fill writes Value into every slot of a pre-sized buffer of length
// extent.Points(); buf's element type must already match Value's datatype,
// validated by the caller (RecordComponent holds the datatype).
func (c Constant) Fill(buf []float64, extent core.Extent) error {
	n := extent.Points()
	if uint64(len(buf)) != n {
		return xerrors.NewInvalidOperation("buffer length does not match extent")
	}
	v, ok := c.Value.AsFloat64()
	if !ok {
		return xerrors.NewInvalidOperation("constant value is not a floating-point datatype")
	}
	for i := range buf {
		buf[i] = v
	}
	return nil
}

// Empty is the representation produced by makeEmpty(dt, rank): a
// zero-extent dataset in at least one dimension. loadChunk on it always
// returns a zero-length buffer regardless of requested offset/extent, per
// spec.md testable property 11.
type Empty struct {
	Dtype attribute.Datatype
	Rank  int
}

func (e Empty) IsEmpty(extent core.Extent) bool {
	if len(extent) == 0 {
		return true
	}
	for _, d := range extent {
		if d == 0 {
			return true
		}
	}
	return false
}
