package export

import (
	"strings"

	"github.com/llir/llvm/ir"
)

// debugIntrinsicPrefix prefixes the names of all debug-info intrinsics
// (llvm.dbg.declare, llvm.dbg.value, llvm.dbg.label, ...).
const debugIntrinsicPrefix = "llvm.dbg."

// intrinsicPrefix prefixes the names of all functions with compiler-known
// semantics.
const intrinsicPrefix = "llvm."

// isDebugFunction reports whether the given function is a debug-info
// intrinsic.  Debug-info intrinsics carry source-level debug records, not
// program semantics, and are omitted from the output entirely.
func isDebugFunction(fn *ir.Func) bool {
	return strings.HasPrefix(fn.Name(), debugIntrinsicPrefix)
}

// isDebugInstruction reports whether the given instruction is a call to a
// debug-info intrinsic.
func isDebugInstruction(inst ir.Instruction) bool {
	call, ok := inst.(*ir.InstCall)
	if !ok {
		return false
	}

	callee, ok := call.Callee.(*ir.Func)
	if !ok {
		return false
	}

	return isDebugFunction(callee)
}

// isIntrinsicFunction reports whether the given function is an intrinsic.
// The `llvm.` name prefix is checked rather than any single host flag: some
// llvm.* helpers (certain memset variants among them) are not marked
// intrinsic by the host but have hard-wired semantics all the same.
func isIntrinsicFunction(fn *ir.Func) bool {
	return strings.HasPrefix(fn.Name(), intrinsicPrefix)
}
