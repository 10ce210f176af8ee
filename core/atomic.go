package core

import "sync/atomic"

// Int64, Int32 and Bool mirror the shape of the teacher's cmn/atomic
// wrappers (atomic.Int64, atomic.Int32 in xact/xs/tcb.go and tcobjs.go).
// No third-party atomic-wrapper library appears anywhere in the retrieved
// corpus, so this one ambient concern stays on the standard library --
// see DESIGN.md.

type Int64 struct{ v int64 }

func (a *Int64) Load() int64        { return atomic.LoadInt64(&a.v) }
func (a *Int64) Store(n int64)      { atomic.StoreInt64(&a.v, n) }
func (a *Int64) Add(n int64) int64  { return atomic.AddInt64(&a.v, n) }
func (a *Int64) CAS(old, n int64) bool {
	return atomic.CompareAndSwapInt64(&a.v, old, n)
}

type Int32 struct{ v int32 }

func (a *Int32) Load() int32       { return atomic.LoadInt32(&a.v) }
func (a *Int32) Store(n int32)     { atomic.StoreInt32(&a.v, n) }
func (a *Int32) Inc() int32        { return atomic.AddInt32(&a.v, 1) }
func (a *Int32) Dec() int32        { return atomic.AddInt32(&a.v, -1) }

type Bool struct{ v int32 }

func (a *Bool) Load() bool {
	return atomic.LoadInt32(&a.v) != 0
}

func (a *Bool) Store(b bool) {
	var n int32
	if b {
		n = 1
	}
	atomic.StoreInt32(&a.v, n)
}

func (a *Bool) CAS(old, n bool) bool {
	var oi, ni int32
	if old {
		oi = 1
	}
	if n {
		ni = 1
	}
	return atomic.CompareAndSwapInt32(&a.v, oi, ni)
}
