package openpmd

import (
	"github.com/openPMD/openpmd-go/attribute"
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/xerrors"
)

// base is the capability set spec.md §4.1 requires of every node in the
// hierarchy: "get/set attribute, enumerate children, enqueue task on self,
// mark dirty, propagate flush". Container, Mesh, Record, ParticleSpecies
// and RecordComponent all embed base to get it for free.
type base struct {
	w      *core.Writable
	series *Series // root owner of the backend handle; nil only for Series itself mid-construction
}

func newBase(series *Series, parent *core.Writable, key string) base {
	return base{w: core.NewWritable(parent, key), series: series}
}

func (b base) Writable() *core.Writable { return b.w }

// GetAttribute returns a node's attribute by key.
func (b base) GetAttribute(key string) (attribute.Attribute, bool) {
	return b.w.Attrs().Get(key)
}

// SetAttribute validates a reserved key's type/cardinality/enum before
// storing it and marking the node dirty (spec.md §4.1's contract (a)(b)).
func (b base) SetAttribute(key string, a attribute.Attribute) error {
	if err := attribute.ValidateReserved(key, a); err != nil {
		return xerrors.NewInvalidOperation("%s", err.Error())
	}
	b.w.Attrs().Set(key, a)
	b.w.MarkDirty()
	return nil
}

// DeleteAttribute removes an attribute, enqueuing DELETE_ATT once a
// backend is attached; a subsequent GetAttribute of the same key must
// report not-found, per testable property 12.
func (b base) DeleteAttribute(key string) bool {
	if !b.w.Attrs().Delete(key) {
		return false
	}
	b.w.MarkDirty()
	if b.series != nil && b.series.backend != nil {
		b.series.backend.Enqueue(iotask.New(b.w, iotask.DeleteAtt, &iotask.Parameter{AttName: key}))
	}
	return true
}

// AttributeKeys enumerates this node's attribute keys in sorted order.
func (b base) AttributeKeys() []string { return b.w.Attrs().Keys() }

func (b base) MarkDirty() { b.w.MarkDirty() }

// enqueue submits a task against this node to the owning Series' backend;
// a no-op (buffered only on the Writable's dirty bit) until a backend
// exists, matching spec.md §5: "load*/store* enqueue synchronously but
// block for I/O only on flush."
func (b base) enqueue(op iotask.Operation, p *iotask.Parameter) {
	if b.series == nil || b.series.backend == nil {
		return
	}
	b.series.backend.Enqueue(iotask.New(b.w, op, p))
}
