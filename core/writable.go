// Package core implements the shared node identity every logical openPMD
// object refers to: the Writable of spec.md §3, plus the Dataset type.
/*
 * Copyright (c) 2018-2024, NVIDIA CORPORATION. All rights reserved.
 */
package core

import (
	"strconv"
	"sync"

	"github.com/OneOfOne/xxhash"
	"github.com/teris-io/shortid"

	"github.com/openPMD/openpmd-go/attribute"
)

// Backend is the minimal surface core needs from a backend handle: identity
// for logging/metrics and a way for Writable to remember which queue it
// belongs to. The full contract lives in package iohandler; core must not
// import it (core sits below iohandler in the dependency graph -- a
// Writable is handed to a backend, not the reverse).
type Backend interface {
	BackendName() string
}

// Writable is the shared identity described in spec.md §3: "an opaque,
// backend-assigned file-position handle (nullable until a backend
// resolves it), a weak link to its parent Writable, a reference to the
// backend handle, a dirty flag ..., a written flag ..., and a key under
// which its parent refers to it." Every logical handle that wraps the same
// node shares one *Writable -- copying a logical object shares the
// pointer, never deep-copies it.
type Writable struct {
	mu sync.Mutex

	id       string // opaque backend-assigned handle; empty until resolved
	idHash   uint64 // xxhash of id, set by Resolve; zero until then
	parent   *Writable
	key      string // key under which parent refers to this node
	backend  Backend
	dirty    Bool
	written  Bool
	attrs    *attribute.Map
}

// NewWritable constructs a fresh, unresolved node attached under parent
// with the given key (the root Series Writable has parent == nil).
func NewWritable(parent *Writable, key string) *Writable {
	return &Writable{
		parent: parent,
		key:    key,
		attrs:  attribute.NewMap(),
	}
}

// Attrs returns this node's attribute map. Callers validate against
// attribute.Reserved before calling Set and must call MarkDirty themselves
// (kept explicit, mirroring spec.md §4.1's "(b) set the dirty flag" being a
// distinct step from the value write, so callers can batch several
// attribute writes under one dirty transition in the future).
func (w *Writable) Attrs() *attribute.Map { return w.attrs }

func (w *Writable) Parent() *Writable { return w.parent }
func (w *Writable) Key() string       { return w.key }

func (w *Writable) MarkDirty()  { w.dirty.Store(true) }
func (w *Writable) IsDirty() bool { return w.dirty.Load() }

func (w *Writable) MarkWritten()   { w.written.Store(true) }
func (w *Writable) IsWritten() bool { return w.written.Load() }

// ClearAfterFlush implements invariant 1 of spec.md §8: after a successful
// flush, written==true and dirty==false.
func (w *Writable) ClearAfterFlush() {
	w.written.Store(true)
	w.dirty.Store(false)
}

// Resolved reports whether a backend has assigned this node a position yet.
func (w *Writable) Resolved() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.id != ""
}

func (w *Writable) ID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.id
}

// Resolve assigns the opaque backend-position handle exactly once; later
// calls with the same id are idempotent, a mismatched id is a bug in the
// calling backend.
func (w *Writable) Resolve(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.id != "" {
		return
	}
	w.id = id
	w.idHash = xxhash.ChecksumString64(id)
}

// IDHash is a fast, non-cryptographic hash of ID(), computed once when
// Resolve assigns the id and zero before that (mirrors aistore LOM's
// mpathDigest, a precomputed hash kept alongside the string path it is
// derived from).
func (w *Writable) IDHash() uint64 { return w.idHash }

func (w *Writable) SetBackend(b Backend) { w.backend = b }
func (w *Writable) Backend() Backend     { return w.backend }

var fallbackCounter Int64

// NewHandleID mints a fresh opaque id via shortid, the same role
// teris-io/shortid plays elsewhere in the teacher's dependency graph.
func NewHandleID() string {
	id, err := shortid.Generate()
	if err != nil {
		// shortid only errors on generator exhaustion/misconfiguration; a
		// process-unique fallback keeps Resolve's "assigned exactly once"
		// contract even in that practically-unreachable case.
		n := fallbackCounter.Add(1)
		return "fallback-" + strconv.FormatInt(n, 10)
	}
	return id
}
