package export

import (
	"irjson/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
)

// SerializeGlobalVariable emits a global-variable record: its name, its value
// type, its linkage-relevant flags, its address space, and its initializer
// when it has one.
func SerializeGlobalVariable(gvar *ir.Global) obj {
	result := obj{}

	if gvar.Name() != "" {
		result["name"] = gvar.Name()
	} else {
		report.Errorf("unnamed global variable: %s", gvar.Ident())
	}
	result["ty"] = SerializeType(gvar.ContentType)

	defined := gvar.Init != nil
	result["is_extern"] = gvar.ExternallyInitialized
	result["is_const"] = gvar.Immutable
	result["is_defined"] = defined
	result["is_exact"] = isExactDefinition(gvar.Linkage, defined)
	result["is_thread_local"] = gvar.TLSModel != enum.TLSModelNone
	result["address_space"] = addrSpace(gvar.Type())

	if gvar.Init != nil {
		result["initializer"] = SerializeConstant(gvar.Init)
	}

	return result
}
