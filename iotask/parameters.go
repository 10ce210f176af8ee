package iotask

import (
	"github.com/openPMD/openpmd-go/attribute"
	"github.com/openPMD/openpmd-go/core"
)

// FlushLevel controls which classes of enqueued tasks a backend must
// commit on a given Backend.Flush call (spec.md §4.2).
type FlushLevel uint8

const (
	UserFlush FlushLevel = iota
	InternalFlush
	SkeletonOnly
	CreateOrOpenFiles
)

func (l FlushLevel) String() string {
	switch l {
	case UserFlush:
		return "UserFlush"
	case InternalFlush:
		return "InternalFlush"
	case SkeletonOnly:
		return "SkeletonOnly"
	case CreateOrOpenFiles:
		return "CreateOrOpenFiles"
	default:
		return "UnknownFlushLevel"
	}
}

// Parameter is the per-operation argument/output struct. Output fields are
// plain struct fields reached through a shared pointer (the *Parameter
// itself, held by both the enqueuing caller and the IOTask) so callers
// observe results in place once a flush resolves them -- spec.md §4.2:
// "Output fields on read-style operations are passed by shared handle so
// callers obtain the result after the batch flush resolves."
type Parameter struct {
	// CREATE_FILE / OPEN_FILE / CLOSE_FILE / DELETE_FILE
	Name      string
	Encoding  string // iterationEncoding, informs the backend of file layout

	// CREATE_PATH / OPEN_PATH / CLOSE_PATH / DELETE_PATH / LIST_PATHS
	Path  string
	Paths []string // output of LIST_PATHS

	// CREATE_DATASET / EXTEND_DATASET / OPEN_DATASET / DELETE_DATASET
	Dataset core.Dataset

	// WRITE_DATASET / READ_DATASET
	Offset core.Offset
	Extent core.Extent
	Dtype  attribute.Datatype
	Data   any // []T for the given Dtype; WRITE reads it, READ fills it

	// LIST_DATASETS
	Datasets []string

	// GET_BUFFER_VIEW
	BufferView any

	// DELETE_ATT / WRITE_ATT / READ_ATT / LIST_ATTS
	AttName string
	Attr    attribute.Attribute // in for WRITE_ATT, out for READ_ATT
	AttKeys []string            // output of LIST_ATTS

	// ADVANCE
	AdvanceMode AdvanceMode
	StepStatus  StepResult // output

	// AVAILABLE_CHUNKS
	AvailChunks []ChunkRange // output
}

// AdvanceMode distinguishes a beginStep from an endStep request on ADVANCE.
type AdvanceMode uint8

const (
	AdvanceBeginStep AdvanceMode = iota
	AdvanceEndStep
)

// StepResult is ADVANCE's outcome, spec.md §4.3's beginStep return value.
type StepResult uint8

const (
	StepOK StepResult = iota
	StepOver
)

// ChunkRange is the wire shape AVAILABLE_CHUNKS reports in, mirroring
// chunk.Written without importing package chunk (which itself
// depends on core, not on iotask) -- callers convert at the boundary.
type ChunkRange struct {
	Offset   core.Offset
	Extent   core.Extent
	SourceID uint32
}

// IOTask is the FIFO-queued unit of work of spec.md §4.2:
// "IOTask = (Writable *target, Operation op, Parameter p)."
type IOTask struct {
	Target *core.Writable
	Op     Operation
	Params *Parameter
}

func New(target *core.Writable, op Operation, p *Parameter) IOTask {
	return IOTask{Target: target, Op: op, Params: p}
}
