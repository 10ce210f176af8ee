package openpmd

import (
	"github.com/openPMD/openpmd-go/attribute"
	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/xerrors"
)

// Iteration holds time/dt/timeUnitSI attributes, the meshes and particles
// containers, and the step/close state machines of spec.md §3/§4.3.
type Iteration struct {
	base
	index uint64

	Meshes    *Container[Mesh]
	Particles *Container[ParticleSpecies]

	closeStatus CloseStatus
	step        stepMachine

	deferredParse bool // defer_iteration_parsing: attribute fetch postponed until first read
	parsed        bool
}

var _ childNode = (*Iteration)(nil)

func newIteration(series *Series, parent *core.Writable, key string) *Iteration {
	it := &Iteration{
		base:        newBase(series, parent, key),
		closeStatus: ParseAccessDeferred,
	}
	it.Meshes = newContainer(series, it.w, "meshes", newMesh)
	it.Particles = newContainer(series, it.w, "particles", newParticleSpecies)
	return it
}

func (it *Iteration) SetTime(t float64) error       { return it.SetAttribute("time", attribute.Float64Of(t)) }
func (it *Iteration) SetDt(dt float64) error         { return it.SetAttribute("dt", attribute.Float64Of(dt)) }
func (it *Iteration) SetTimeUnitSI(u float64) error  { return it.SetAttribute("timeUnitSI", attribute.Float64Of(u)) }

func (it *Iteration) CloseStatus() CloseStatus { return it.closeStatus }

// Open transitions the iteration open, as required before it+1 opens in
// ordered writers, and before new writes may be enqueued against it
// (spec.md §4.3: "open() requires {ParseAccessDeferred, Open,
// ClosedTemporarily}").
func (it *Iteration) Open() error {
	if !it.closeStatus.CanOpen() {
		return xerrors.NewWrongAPIUsage("cannot open iteration %d from state %s", it.index, it.closeStatus)
	}
	it.closeStatus = Open
	if it.deferredParse && !it.parsed {
		it.runDeferredParseAccess()
	}
	return nil
}

// runDeferredParseAccess performs the postponed attribute fetch; in this
// implementation the fetch itself is the backend's READ_ATT/LIST_ATTS
// tasks, enqueued here and resolved by the next flush (spec.md §4.3:
// "Attempting to read attributes of a deferred iteration triggers
// runDeferredParseAccess before the user call returns").
func (it *Iteration) runDeferredParseAccess() {
	it.parsed = true
	it.enqueue(iotask.ListAtts, &iotask.Parameter{})
}

// Close sets the close status and enqueues CLOSE_FILE, which the next
// Series.Flush hands to the backend; legal from any non-Closed state.
// temporarily, when the streaming engine supports reopening a fileBased
// iteration, callers pass temporarily=true to land in ClosedTemporarily
// rather than ClosedInFrontend.
func (it *Iteration) Close(temporarily bool) error {
	if !it.closeStatus.CanClose() {
		return xerrors.NewWrongAPIUsage("cannot close iteration %d from state %s", it.index, it.closeStatus)
	}
	if temporarily {
		it.closeStatus = ClosedTemporarily
	} else {
		it.closeStatus = ClosedInFrontend
	}
	it.enqueue(iotask.CloseFile, &iotask.Parameter{})
	return nil
}

// MarkClosedInBackend is called by Series.Flush for an iteration closed in
// the frontend, while it queues that flush's tasks and before the backend
// executes them.
func (it *Iteration) MarkClosedInBackend() { it.closeStatus = ClosedInBackend }

func (it *Iteration) BeginStep() error { return it.step.beginStep() }
func (it *Iteration) EndStep() error   { return it.step.endStep() }
func (it *Iteration) StepStatus() StepStatus { return it.step.status }

func (it *Iteration) Index() uint64 { return it.index }
