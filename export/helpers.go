package export

import (
	"irjson/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// addrSpace extracts the address space of a pointer type, or of the element
// pointer type when given a vector of pointers.
func addrSpace(typ types.Type) int {
	switch t := typ.(type) {
	case *types.PointerType:
		return int(t.AddrSpace)
	case *types.VectorType:
		return addrSpace(t.ElemType)
	default:
		report.Fatalf("address space requested for non-pointer type: %v", typ)
		return 0
	}
}

// pointeeType extracts the pointee of a pointer type, or of the element
// pointer type when given a vector of pointers.
func pointeeType(typ types.Type) types.Type {
	switch t := typ.(type) {
	case *types.PointerType:
		return t.ElemType
	case *types.VectorType:
		return pointeeType(t.ElemType)
	default:
		report.Fatalf("pointee requested for non-pointer type: %v", typ)
		return nil
	}
}

// calleeSignature extracts the function signature of a callable value: either
// the value is typed as a function directly or as a pointer to one.
func calleeSignature(callee value.Value) *types.FuncType {
	typ := callee.Type()
	if ptr, ok := typ.(*types.PointerType); ok {
		typ = ptr.ElemType
	}

	sig, ok := typ.(*types.FuncType)
	if !ok {
		report.Fatalf("callee is not of a function type: %v", callee)
	}

	return sig
}

// isExactDefinition reports whether a defined global entity with the given
// linkage cannot be replaced at link time by some other definition.
func isExactDefinition(linkage enum.Linkage, defined bool) bool {
	if !defined {
		return false
	}

	switch linkage {
	case enum.LinkageAvailableExternally,
		enum.LinkageLinkOnce,
		enum.LinkageLinkOnceODR,
		enum.LinkageWeak,
		enum.LinkageWeakODR,
		enum.LinkageCommon,
		enum.LinkageExternWeak:
		return false
	}

	return true
}

// blockLabel resolves a terminator target to its block label within the given
// context.  Targets are typed as plain values in the IR graph but must be
// basic blocks in a well-formed module.
func (ctx *FuncContext) blockLabel(target value.Value) int {
	block, ok := target.(*ir.Block)
	if !ok {
		report.Fatalf("branch target is not a basic block: %v", target)
	}

	return ctx.getBlock(block)
}
