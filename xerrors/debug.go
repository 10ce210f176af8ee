package xerrors

import "fmt"

// Assert and AssertNoErr mirror the teacher's cmn/debug.Assert call sites
// (debug.Assert(bckEq), debug.AssertNoErr(err)) -- invariants that must hold
// by construction and whose violation indicates a bug in this module, not a
// caller error.

func Assert(cond bool, args ...any) {
	if !cond {
		panic(fmt.Sprint(append([]any{"assertion failed: "}, args...)...))
	}
}

func AssertNoErr(err error) {
	if err != nil {
		panic(fmt.Sprintf("assertion failed, unexpected err: %v", err))
	}
}
