package core

import "github.com/openPMD/openpmd-go/attribute"

// Extent is a sequence of u64 dimensions; rank is its length.
type Extent []uint64

// Offset is a same-length sequence of u64 origins.
type Offset []uint64

func (e Extent) Rank() int { return len(e) }

// Equal reports element-wise equality.
func (e Extent) Equal(o Extent) bool {
	if len(e) != len(o) {
		return false
	}
	for i := range e {
		if e[i] != o[i] {
			return false
		}
	}
	return true
}

// Points returns the total number of elements covered, 0 for any zero
// dimension (spec.md §4.1's makeEmpty: "whose dataset has zero in at least
// one extent").
func (e Extent) Points() uint64 {
	if len(e) == 0 {
		return 0
	}
	n := uint64(1)
	for _, d := range e {
		n *= d
	}
	return n
}

// Clone returns an independent copy.
func (e Extent) Clone() Extent { return append(Extent(nil), e...) }

// DatasetOptions carries the per-dataset backend hints spec.md §3 calls
// for ("optional per-dataset backend hints (chunk size, compression id,
// named transforms, backend-specific options string)") plus the escape
// hatch of a raw per-backend option bag mirroring the JSON `dataset`
// config object of spec.md §4.6.
type DatasetOptions struct {
	ChunkSize   Extent
	Compression string // "", "lz4"
	Transform   []string
	Backend     map[string]attribute.Attribute
}

// Dataset is the pair (Datatype dtype, Extent extent) of spec.md §3, plus
// options.
type Dataset struct {
	Dtype   attribute.Datatype
	Extent  Extent
	Options DatasetOptions
}

func NewDataset(dt attribute.Datatype, extent Extent) Dataset {
	return Dataset{Dtype: dt, Extent: extent.Clone()}
}
