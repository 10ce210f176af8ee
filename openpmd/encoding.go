package openpmd

import "github.com/openPMD/openpmd-go/xerrors"

// Encoding is the iteration-layout scheme of spec.md §4.3.
type Encoding int

const (
	FileBased Encoding = iota
	GroupBased
	VariableBased
)

func (e Encoding) String() string {
	switch e {
	case FileBased:
		return "fileBased"
	case GroupBased:
		return "groupBased"
	case VariableBased:
		return "variableBased"
	default:
		return "unknownEncoding"
	}
}

// CloseStatus is the per-iteration state machine of spec.md §4.3.
type CloseStatus int

const (
	ParseAccessDeferred CloseStatus = iota
	Open
	ClosedInFrontend
	ClosedInBackend
	ClosedTemporarily
)

func (s CloseStatus) String() string {
	switch s {
	case ParseAccessDeferred:
		return "ParseAccessDeferred"
	case Open:
		return "Open"
	case ClosedInFrontend:
		return "ClosedInFrontend"
	case ClosedInBackend:
		return "ClosedInBackend"
	case ClosedTemporarily:
		return "ClosedTemporarily"
	default:
		return "UnknownCloseStatus"
	}
}

// CanOpen reports whether open() is legal from s (spec.md §4.3: "open()
// requires {ParseAccessDeferred, Open, ClosedTemporarily}").
func (s CloseStatus) CanOpen() bool {
	return s == ParseAccessDeferred || s == Open || s == ClosedTemporarily
}

// CanClose reports whether close() is legal from s ("may be called from
// any non-Closed state").
func (s CloseStatus) CanClose() bool {
	return s != ClosedInFrontend && s != ClosedInBackend
}

// StepStatus is the per-Series (groupBased/variableBased) or per-Iteration
// (fileBased) begin/end-step state machine of spec.md §4.3.
type StepStatus int

const (
	NoStep StepStatus = iota
	DuringStep
)

func (s StepStatus) String() string {
	if s == DuringStep {
		return "DuringStep"
	}
	return "NoStep"
}

// stepMachine guards the NoStep <-> DuringStep transitions and rejects
// protocol violations as xerrors.WrongAPIUsage.
type stepMachine struct {
	status StepStatus
}

func (m *stepMachine) beginStep() error {
	if m.status != NoStep {
		return xerrors.NewWrongAPIUsage("beginStep called while already DuringStep")
	}
	m.status = DuringStep
	return nil
}

func (m *stepMachine) endStep() error {
	if m.status != DuringStep {
		return xerrors.NewWrongAPIUsage("endStep called while not DuringStep")
	}
	m.status = NoStep
	return nil
}
