package openpmd

import "github.com/openPMD/openpmd-go/core"

// scalarKey is the sentinel child key a scalar Record/Mesh reserves for
// its one component (spec.md §4.1: "The scalar case is encoded by
// reserving a sentinel child key.").
const scalarKey = "\x00scalar\x00"

// Record is Container<RecordComponent> when vector/tensor-valued, or a
// single scalar component reached through scalarKey (spec.md §3's Record
// row). unitDimension/timeOffset live on the Record's own attribute map.
type Record struct {
	*Container[*RecordComponent]
}

var _ childNode = Record{}

func newRecord(series *Series, parent *core.Writable, key string) Record {
	return Record{Container: newContainer(series, parent, key, newRecordComponent)}
}

func (r Record) Writable() *core.Writable { return r.Container.Writable() }

// IsScalar reports whether this record was ever accessed through its
// scalar sentinel component.
func (r Record) IsScalar() bool { return r.Contains(scalarKey) }

// ScalarComponent returns (and auto-creates) the sentinel component of a
// scalar-valued record.
func (r Record) ScalarComponent() *RecordComponent { return r.Get(scalarKey) }

// Component returns (and auto-creates) a named axis component of a
// vector/tensor-valued record, e.g. "x", "y", "z".
func (r Record) Component(axis string) *RecordComponent { return r.Get(axis) }
