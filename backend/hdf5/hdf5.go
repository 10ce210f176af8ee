// Package hdf5 registers the HDF5 backend name so config/discovery can
// route ".h5" files and a "backend": "hdf5" config key to a concrete
// handler, without shipping real HDF5 bindings. Byte-level HDF5 I/O is
// explicitly out of scope (spec.md §1, §6): every task fails with
// UnsupportedData rather than silently no-opping, so a caller cannot
// mistake a stub flush for a real one.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package hdf5

import (
	"context"

	"github.com/openPMD/openpmd-go/iohandler"
	"github.com/openPMD/openpmd-go/iotask"
	"github.com/openPMD/openpmd-go/xerrors"
)

// Handler is a contract-only stand-in: it accepts tasks (so callers can
// enqueue without knowing the backend is unimplemented) but every Flush
// fails, identifying HDF5 as the requested format.
type Handler struct {
	iohandler.Base
	name string
}

var _ iohandler.Backend = (*Handler)(nil)

func New(name string) *Handler {
	return &Handler{name: name}
}

func (*Handler) BackendName() string { return "HDF5" }
func (h *Handler) Name() string      { return h.name }

func (h *Handler) Flush(_ context.Context, _ iotask.FlushLevel) error {
	pending := h.Pending()
	h.Drain()
	if pending == 0 {
		h.SetLastFlushOK(true)
		return nil
	}
	h.SetLastFlushOK(false)
	return xerrors.NewUnsupportedData("HDF5 backend has no bindings in this build; %d task(s) could not be persisted", pending)
}
