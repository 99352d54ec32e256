package export

import (
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// SerializeModule emits the top-level module record.  Prepare must have run
// first: function bodies may carry block-address constants into any other
// function in the module.
func SerializeModule(mod *ir.Module) obj {
	result := obj{
		"name": mod.SourceFilename,
		"asm":  strings.Join(mod.ModuleAsms, "\n"),
	}

	structs := arr{}
	for _, def := range mod.TypeDefs {
		st, ok := def.(*types.StructType)
		if !ok {
			// typedefs of non-struct types have no standing in the schema
			continue
		}

		structs = append(structs, serializeTypeStruct(st))
	}
	result["structs"] = structs

	globals := make(arr, 0, len(mod.Globals))
	for _, gvar := range mod.Globals {
		globals = append(globals, SerializeGlobalVariable(gvar))
	}
	result["global_variables"] = globals

	funcs := arr{}
	for _, fn := range mod.Funcs {
		if isDebugFunction(fn) {
			continue
		}

		funcs = append(funcs, SerializeFunction(fn))
	}
	result["functions"] = funcs

	return result
}
