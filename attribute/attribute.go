package attribute

import (
	"fmt"
	"reflect"
)

// Attribute is a tagged union over every Datatype variant. Attributes are
// cheap, copyable, comparable value types; the payload is stored as `any`
// but every constructor pins it to the matching Datatype so dispatch is a
// single switch, not a type assertion chain, at every call site that cares.
type Attribute struct {
	dtype Datatype
	value any
}

// Make packages a value together with the Datatype tag it claims to be.
// Callers normally use one of the typed constructors below; Make exists for
// generic/dispatch code paths (e.g. backends deserializing from the wire).
func Make(dt Datatype, v any) Attribute { return Attribute{dtype: dt, value: v} }

func (a Attribute) Dtype() Datatype { return a.dtype }
func (a Attribute) Raw() any        { return a.value }

func (a Attribute) IsUndefined() bool { return a.dtype == UNDEFINED }

// Typed constructors, one per commonly-used scalar/vector variant. The full
// enumeration is reachable through Make for the rest.

func Int64Of(v int64) Attribute     { return Attribute{Int64, v} }
func Float64Of(v float64) Attribute { return Attribute{Double, v} }
func BoolOf(v bool) Attribute       { return Attribute{Bool, v} }
func StringOf(v string) Attribute   { return Attribute{String, v} }
func CharOf(v byte) Attribute       { return Attribute{Char, v} }

func VecFloat64Of(v []float64) Attribute { return Attribute{VecDouble, append([]float64(nil), v...)} }
func VecInt64Of(v []int64) Attribute     { return Attribute{VecInt64, append([]int64(nil), v...)} }
func VecStringOf(v []string) Attribute   { return Attribute{VecString, append([]string(nil), v...)} }
func VecUInt64Of(v []uint64) Attribute   { return Attribute{VecUInt64, append([]uint64(nil), v...)} }

// UnitDimensionOf constructs the distinguished 7-tuple of doubles used for
// physical unit dimensions (spec.md §3); the [7]float64 parameter type fixes
// the length at compile time, so there is no runtime length check.
func UnitDimensionOf(v [7]float64) Attribute {
	return Attribute{UnitDimension, v}
}

// AsInt64 / AsFloat64 / AsBool / AsString type-assert the payload, returning
// ok=false on a Datatype/Go-type mismatch rather than panicking -- callers
// at the API boundary (spec.md §7's "local preconditions validated
// synchronously") turn a false here into xerrors.InvalidOperation.
func (a Attribute) AsInt64() (int64, bool) {
	v, ok := a.value.(int64)
	return v, ok
}

func (a Attribute) AsFloat64() (float64, bool) {
	v, ok := a.value.(float64)
	return v, ok
}

func (a Attribute) AsBool() (bool, bool) {
	v, ok := a.value.(bool)
	return v, ok
}

func (a Attribute) AsString() (string, bool) {
	v, ok := a.value.(string)
	return v, ok
}

func (a Attribute) AsVecFloat64() ([]float64, bool) {
	v, ok := a.value.([]float64)
	return v, ok
}

func (a Attribute) AsUnitDimension() ([7]float64, bool) {
	v, ok := a.value.([7]float64)
	return v, ok
}

// Clone deep-copies the payload when it is a slice/array, so two Attributes
// never alias the same backing storage -- Attributes are value-semantic.
func (a Attribute) Clone() Attribute {
	rv := reflect.ValueOf(a.value)
	switch rv.Kind() {
	case reflect.Slice:
		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(cp, rv)
		return Attribute{a.dtype, cp.Interface()}
	default:
		return a // arrays and scalars are copied by value already
	}
}

// Equal reports deep value equality, used by the merge-idempotence and
// round-trip tests of spec.md §8.
func (a Attribute) Equal(b Attribute) bool {
	if a.dtype != b.dtype {
		return false
	}
	return reflect.DeepEqual(a.value, b.value)
}

func (a Attribute) String() string {
	return fmt.Sprintf("Attribute(%s, %v)", a.dtype, a.value)
}
