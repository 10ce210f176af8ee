// Package attribute implements the openPMD Datatype enumeration and the
// Attribute tagged union, plus the AttributeMap every logical node owns.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package attribute

// Datatype is the closed enumeration of spec.md §3: scalar and
// vector/array value types, plus the two pseudo-values UNDEFINED and
// DATATYPE. Every operation that accepts a dynamic value carries one.
type Datatype uint8

const (
	UNDEFINED Datatype = iota
	DATATYPE           // reflective: "a Datatype value itself"

	Char
	Bool
	String

	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Long     // native "long" width, distinct tag per spec.md §3
	LongLong // native "long long" width

	Float
	Double
	LongDouble

	ComplexFloat
	ComplexDouble
	ComplexLongDouble

	VecChar
	VecBool
	VecString
	VecInt8
	VecInt16
	VecInt32
	VecInt64
	VecUInt8
	VecUInt16
	VecUInt32
	VecUInt64
	VecFloat
	VecDouble
	VecLongDouble

	// UnitDimension is the distinguished 7-tuple of doubles used for
	// physical unit dimensions (spec.md §3).
	UnitDimension
)

//go:generate stringer -type=Datatype

var names = map[Datatype]string{
	UNDEFINED:         "UNDEFINED",
	DATATYPE:          "DATATYPE",
	Char:              "CHAR",
	Bool:              "BOOL",
	String:            "STRING",
	Int8:              "INT8",
	Int16:             "INT16",
	Int32:             "INT32",
	Int64:             "INT64",
	UInt8:             "UINT8",
	UInt16:            "UINT16",
	UInt32:            "UINT32",
	UInt64:            "UINT64",
	Long:              "LONG",
	LongLong:          "LONGLONG",
	Float:             "FLOAT",
	Double:            "DOUBLE",
	LongDouble:        "LONG_DOUBLE",
	ComplexFloat:      "CFLOAT",
	ComplexDouble:     "CDOUBLE",
	ComplexLongDouble: "CLONG_DOUBLE",
	VecChar:           "VEC_CHAR",
	VecBool:           "VEC_BOOL",
	VecString:         "VEC_STRING",
	VecInt8:           "VEC_INT8",
	VecInt16:          "VEC_INT16",
	VecInt32:          "VEC_INT32",
	VecInt64:          "VEC_INT64",
	VecUInt8:          "VEC_UINT8",
	VecUInt16:         "VEC_UINT16",
	VecUInt32:         "VEC_UINT32",
	VecUInt64:         "VEC_UINT64",
	VecFloat:          "VEC_FLOAT",
	VecDouble:         "VEC_DOUBLE",
	VecLongDouble:     "VEC_LONG_DOUBLE",
	UnitDimension:     "ARR_DBL_7",
}

func (dt Datatype) String() string {
	if s, ok := names[dt]; ok {
		return s
	}
	return "UNKNOWN"
}

var byName map[string]Datatype

func init() {
	byName = make(map[string]Datatype, len(names))
	for dt, s := range names {
		byName[s] = dt
	}
}

// ParseDatatype inverts String, used by backends reconstructing a Datatype
// from its serialized form (spec.md §4.2's on-disk node records dtype as a
// string, not the numeric tag).
func ParseDatatype(s string) (Datatype, bool) {
	dt, ok := byName[s]
	return dt, ok
}

// IsVector reports whether dt is one of the Vec* variants or UnitDimension.
func (dt Datatype) IsVector() bool {
	switch dt {
	case VecChar, VecBool, VecString, VecInt8, VecInt16, VecInt32, VecInt64,
		VecUInt8, VecUInt16, VecUInt32, VecUInt64, VecFloat, VecDouble,
		VecLongDouble, UnitDimension:
		return true
	default:
		return false
	}
}

// IsFloatingPoint reports whether dt is a real or complex floating type.
func (dt Datatype) IsFloatingPoint() bool {
	switch dt {
	case Float, Double, LongDouble, ComplexFloat, ComplexDouble, ComplexLongDouble,
		VecFloat, VecDouble, VecLongDouble:
		return true
	default:
		return false
	}
}

// IsInt reports whether dt is a signed or unsigned integer type (scalar or vector).
func (dt Datatype) IsInt() bool {
	switch dt {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64, Long, LongLong,
		VecInt8, VecInt16, VecInt32, VecInt64, VecUInt8, VecUInt16, VecUInt32, VecUInt64:
		return true
	default:
		return false
	}
}
