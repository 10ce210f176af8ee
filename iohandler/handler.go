// Package iohandler defines the backend contract of spec.md §4.2: a pure
// interface executing a FIFO queue of tasks under a flush-level policy.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package iohandler

import (
	"context"

	"github.com/openPMD/openpmd-go/iotask"
)

// Backend is implemented by every storage backend (dummy, json, toml,
// hdf5, adios2). Flush must execute tasks in enqueue order, populate their
// output fields in place, and leave task output shared handles valid after
// return (spec.md §4.2).
type Backend interface {
	// Enqueue appends a task to this backend's FIFO queue. Enqueue itself
	// never blocks on I/O (spec.md §5: "load*/store* enqueue synchronously
	// but block for I/O only on flush").
	Enqueue(t iotask.IOTask)

	// Flush executes every queued task honoring level, then clears the
	// queue. The returned error, if non-nil, is an *xerrors.BackendError;
	// partial completion on error is backend-defined per spec.md §7.
	Flush(ctx context.Context, level iotask.FlushLevel) error

	// BackendName identifies the backend for logs, metrics and error
	// values (spec.md §4.2: "A backend
	// implementation provides: enqueue(task), flush(FlushParams) ->
	// future<void>, backendName()").
	BackendName() string

	// Name is this backend instance's own label (its cname), distinct
	// from BackendName's family name -- spec.md §4.2 calls for both.
	Name() string
}

// LastFlushSuccessful reports whether the most recent Flush call on a
// Backend completed without error; cleared on exception per spec.md
// §4.7 ("the last-flush-successful flag on the backend is cleared on
// exception and queried by the user seriesFlush() path").
type LastFlushSuccessful interface {
	LastFlushOK() bool
}
