// Package openpmd implements the logical hierarchy of spec.md §3-§4:
// Series, Iteration, Mesh, ParticleSpecies, Record, RecordComponent, the
// encoding and step state machines, and the flush engine that drains
// pending work into a backend.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package openpmd

// Access is the mode a Series is opened under (spec.md §6).
type Access int

const (
	ReadOnly Access = iota
	ReadRandomAccess
	ReadWrite
	Create
	Append
	ReadLinear
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "READ_ONLY"
	case ReadRandomAccess:
		return "READ_RANDOM_ACCESS"
	case ReadWrite:
		return "READ_WRITE"
	case Create:
		return "CREATE"
	case Append:
		return "APPEND"
	case ReadLinear:
		return "READ_LINEAR"
	default:
		return "UNKNOWN_ACCESS"
	}
}

// IsWriting reports whether the mode enqueues mutating tasks at all.
func (a Access) IsWriting() bool {
	return a == ReadWrite || a == Create || a == Append
}

// IsReading reports whether the mode allows reading existing iterations.
// APPEND deliberately never reads existing iterations (DESIGN.md's
// resolution of spec.md §9's Open Question on APPEND semantics: "add new
// iterations without reading existing ones").
func (a Access) IsReading() bool {
	return a == ReadOnly || a == ReadRandomAccess || a == ReadWrite || a == ReadLinear
}
