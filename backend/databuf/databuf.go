// Package databuf gives the reference backends (backend/json,
// backend/toml) a typed, offset-addressed backing array per dataset, so
// that chunk writes/reads at different regions of the same dataset don't
// clobber each other the way a single "last write wins" field would.
package databuf

import (
	"fmt"
	"reflect"

	"github.com/openPMD/openpmd-go/attribute"
)

// Buffer is a dataset's full row-major backing array.
type Buffer struct {
	Dtype  attribute.Datatype
	Extent []uint64
	slice  reflect.Value
}

func elemType(dt attribute.Datatype) (reflect.Type, bool) {
	switch dt {
	case attribute.Int8:
		return reflect.TypeOf(int8(0)), true
	case attribute.Int16:
		return reflect.TypeOf(int16(0)), true
	case attribute.Int32:
		return reflect.TypeOf(int32(0)), true
	case attribute.Int64, attribute.Long, attribute.LongLong:
		return reflect.TypeOf(int64(0)), true
	case attribute.UInt8:
		return reflect.TypeOf(uint8(0)), true
	case attribute.UInt16:
		return reflect.TypeOf(uint16(0)), true
	case attribute.UInt32:
		return reflect.TypeOf(uint32(0)), true
	case attribute.UInt64:
		return reflect.TypeOf(uint64(0)), true
	case attribute.Float:
		return reflect.TypeOf(float32(0)), true
	case attribute.Double, attribute.LongDouble:
		return reflect.TypeOf(float64(0)), true
	case attribute.Bool:
		return reflect.TypeOf(false), true
	case attribute.Char:
		return reflect.TypeOf(byte(0)), true
	default:
		return nil, false
	}
}

func points(extent []uint64) uint64 {
	n := uint64(1)
	for _, e := range extent {
		n *= e
	}
	return n
}

// New allocates a zero-valued backing array for a freshly created dataset.
func New(dt attribute.Datatype, extent []uint64) (*Buffer, error) {
	et, ok := elemType(dt)
	if !ok {
		return nil, fmt.Errorf("databuf: unsupported datatype %s for offset-addressed storage", dt)
	}
	n := int(points(extent))
	return &Buffer{
		Dtype:  dt,
		Extent: append([]uint64(nil), extent...),
		slice:  reflect.MakeSlice(reflect.SliceOf(et), n, n),
	}, nil
}

// Wrap reconstructs a Buffer around previously-stored data, e.g. a node's
// Data field reloaded through Open (where it comes back as []interface{}
// rather than the original concrete slice type once it has passed through
// a JSON/TOML round trip). Falls back to a zero-valued buffer when data is
// absent, the wrong length, or not element-wise convertible.
func Wrap(dt attribute.Datatype, extent []uint64, data any) (*Buffer, error) {
	et, ok := elemType(dt)
	if !ok {
		return nil, fmt.Errorf("databuf: unsupported datatype %s for offset-addressed storage", dt)
	}
	n := int(points(extent))
	b := &Buffer{Dtype: dt, Extent: append([]uint64(nil), extent...)}
	if data != nil {
		if rv := reflect.ValueOf(data); rv.Kind() == reflect.Slice && rv.Len() == n {
			if converted, ok := convertSlice(rv, et, n); ok {
				b.slice = converted
				return b, nil
			}
		}
	}
	b.slice = reflect.MakeSlice(reflect.SliceOf(et), n, n)
	return b, nil
}

func convertSlice(rv reflect.Value, et reflect.Type, n int) (reflect.Value, bool) {
	out := reflect.MakeSlice(reflect.SliceOf(et), n, n)
	for i := 0; i < n; i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		if !elem.IsValid() || !elem.Type().ConvertibleTo(et) {
			return reflect.Value{}, false
		}
		out.Index(i).Set(elem.Convert(et))
	}
	return out, true
}

// Resize grows the buffer to newExtent, splicing the old contents back in
// at offset zero. Dataset extents only ever grow across a resetDataset
// (openpmd/recordcomponent.go enforces this), so every old index still has
// a home in the new shape.
func (b *Buffer) Resize(newExtent []uint64) error {
	old := b.slice
	oldExtent := b.Extent
	n := int(points(newExtent))
	fresh := &Buffer{Dtype: b.Dtype, Extent: append([]uint64(nil), newExtent...), slice: reflect.MakeSlice(old.Type(), n, n)}
	offset := make([]uint64, len(oldExtent))
	if len(oldExtent) > 0 {
		if err := fresh.splice(offset, oldExtent, old, true); err != nil {
			return err
		}
	}
	*b = *fresh
	return nil
}

// Write splices data (a slice whose element type matches Dtype, or an
// []interface{} produced by a JSON/TOML round trip) into the region
// described by offset/extent.
func (b *Buffer) Write(offset, extent []uint64, data any) error {
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice {
		return fmt.Errorf("databuf: chunk data is not a slice")
	}
	n := int(points(extent))
	if rv.Len() != n {
		return fmt.Errorf("databuf: chunk data length %d does not match extent (%d elements)", rv.Len(), n)
	}
	side, ok := convertSlice(rv, b.slice.Type().Elem(), n)
	if !ok {
		return fmt.Errorf("databuf: chunk data is not convertible to %s", b.slice.Type().Elem())
	}
	return b.splice(offset, extent, side, true)
}

// Read extracts the region described by offset/extent into a freshly
// allocated slice of the buffer's element type.
func (b *Buffer) Read(offset, extent []uint64) (any, error) {
	n := int(points(extent))
	dst := reflect.MakeSlice(b.slice.Type(), n, n)
	if err := b.splice(offset, extent, dst, false); err != nil {
		return nil, err
	}
	return dst.Interface(), nil
}

// splice walks every linear index of the region (offset, regionExtent) in
// row-major order, translating it into the full buffer's linear index, and
// copies element-wise between b.slice and side (a slice sized to the
// region's point count). toBuffer true copies side into b.slice; false
// copies b.slice into side.
func (b *Buffer) splice(offset, regionExtent []uint64, side reflect.Value, toBuffer bool) error {
	rank := len(b.Extent)
	if len(offset) != rank || len(regionExtent) != rank {
		return fmt.Errorf("databuf: offset/extent rank %d does not match dataset rank %d", len(regionExtent), rank)
	}
	n := points(regionExtent)
	idx := make([]uint64, rank)
	for linear := uint64(0); linear < n; linear++ {
		rem := linear
		for d := rank - 1; d >= 0; d-- {
			if regionExtent[d] == 0 {
				idx[d] = 0
				continue
			}
			idx[d] = rem % regionExtent[d]
			rem /= regionExtent[d]
		}
		full := uint64(0)
		for d := 0; d < rank; d++ {
			full = full*b.Extent[d] + (offset[d] + idx[d])
		}
		if full >= uint64(b.slice.Len()) {
			return fmt.Errorf("databuf: spliced index %d out of range for a %d-element buffer", full, b.slice.Len())
		}
		if toBuffer {
			b.slice.Index(int(full)).Set(side.Index(int(linear)))
		} else {
			side.Index(int(linear)).Set(b.slice.Index(int(full)))
		}
	}
	return nil
}

// Data returns the buffer's full contents as its concrete slice type, the
// representation stored back into a node's Data field so render()/Export()
// continue to see the whole array.
func (b *Buffer) Data() any { return b.slice.Interface() }
