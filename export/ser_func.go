package export

import (
	"irjson/report"
	"irjson/util"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// SerializeFunction emits a function record: name, signature, definition
// flags, parameters, and body.  An unnamed function is a data anomaly; the
// record is emitted without a name.
func SerializeFunction(fn *ir.Func) obj {
	result := obj{}

	if fn.Name() != "" {
		result["name"] = fn.Name()
	} else {
		report.Errorf("unnamed function: %s", fn.Ident())
	}
	result["ty"] = SerializeType(fn.Sig)

	defined := len(fn.Blocks) > 0
	result["is_defined"] = defined
	result["is_exact"] = isExactDefinition(fn.Linkage, defined)
	result["is_intrinsic"] = isIntrinsicFunction(fn)

	result["params"] = util.Map(fn.Params, serializeParameter)

	ctx := functionContext(fn)
	blocks := make(arr, 0, len(fn.Blocks))
	for _, block := range fn.Blocks {
		blocks = append(blocks, ctx.serializeBlock(block))
	}
	result["blocks"] = blocks

	return result
}

// serializeParameter emits a parameter record.  Each attribute facet is
// present only when the corresponding attribute is; its value is the type the
// attribute refers to.
func serializeParameter(param *ir.Param) obj {
	result := obj{"ty": SerializeType(param.Typ)}

	if param.Name() != "" {
		result["name"] = param.Name()
	}

	for _, attr := range param.Attrs {
		switch attr := attr.(type) {
		case ir.Byval:
			result["by_val"] = attrType(attr.Typ, param)
		case ir.ByRef:
			result["by_ref"] = attrType(attr.Typ, param)
		case ir.Preallocated:
			result["pre_allocated"] = attrType(attr.Typ, param)
		case ir.SRet:
			result["struct_ret"] = attrType(attr.Typ, param)
		case ir.InAlloca:
			result["in_alloca"] = attrType(attr.Typ, param)
		case ir.ElementType:
			result["element_type"] = attrType(attr.Typ, param)
		}
	}

	return result
}

// attrType resolves the type a parameter attribute refers to.  Older IR
// leaves the attribute untyped; the pointee of the parameter's own type is
// the referent then.
func attrType(typ types.Type, param *ir.Param) obj {
	if typ == nil {
		typ = pointeeType(param.Typ)
	}

	return SerializeType(typ)
}

// serializeBlock emits a block record: its label, its name when it has one,
// its body, and its terminator.  The terminator sits outside the body; debug
// instructions are not part of the body at all.
func (ctx *FuncContext) serializeBlock(block *ir.Block) obj {
	result := obj{"label": ctx.getBlock(block)}

	if block.Name() != "" {
		result["name"] = block.Name()
	}

	body := make(arr, 0, len(block.Insts))
	for _, inst := range block.Insts {
		if isDebugInstruction(inst) {
			continue
		}

		body = append(body, ctx.serializeInstruction(inst))
	}
	result["body"] = body

	result["terminator"] = ctx.serializeInstruction(block.Term)
	return result
}
