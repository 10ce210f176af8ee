package iohandler

import (
	"sync"

	"github.com/openPMD/openpmd-go/core"
	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/metrics"
)

// Base implements the FIFO queue and last-flush-successful bookkeeping
// common to every concrete backend, the way the teacher's xaction Base
// (embedded into XactTCB/XactTCObjs in xact/xs/tcb.go, tcobjs.go) factors
// out Finish/AddErr/IsIdle bookkeeping shared by every xaction kind.
// Concrete backends embed Base and implement only Flush/BackendName/Name.
type Base struct {
	mu      sync.Mutex
	queue   []iotask.IOTask
	lastOK  core.Bool
}

func (b *Base) Enqueue(t iotask.IOTask) {
	b.mu.Lock()
	b.queue = append(b.queue, t)
	b.mu.Unlock()
	metrics.TasksEnqueued.WithLabelValues(t.Op.String()).Inc()
}

// Drain removes and returns every queued task in FIFO enqueue order,
// leaving the queue empty. Concrete Flush implementations call this once
// per Flush invocation.
func (b *Base) Drain() []iotask.IOTask {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.queue
	b.queue = nil
	return q
}

// Pending reports the number of tasks currently queued, without draining.
func (b *Base) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

func (b *Base) SetLastFlushOK(ok bool) { b.lastOK.Store(ok) }
func (b *Base) LastFlushOK() bool      { return b.lastOK.Load() }
