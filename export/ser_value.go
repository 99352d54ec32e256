package export

import (
	"irjson/report"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/metadata"
	"github.com/llir/llvm/ir/value"
)

// serializeValue dispatches over the kinds of value an operand can be: a
// function argument, a constant, the result of a labeled instruction, or a
// basic block used as a value.  Value kinds that cannot appear as operands in
// a well-formed module at this point are defects.
func (ctx *FuncContext) serializeValue(val value.Value) obj {
	switch v := val.(type) {
	case *ir.Param:
		return obj{"Argument": obj{
			"ty":    SerializeType(v.Type()),
			"index": ctx.getArgument(v),
		}}

	case *ir.Block:
		return obj{"Label": serializeValueBlock(v)}

	case *ir.InlineAsm:
		report.Fatalf("unexpected inline assembly as value: %v", v)
		return nil

	case constant.Constant:
		return obj{"Constant": SerializeConstant(v)}

	case *metadata.Value:
		// the metadata subsystem is not ready; the tag is reserved
		return obj{"Metadata": nil}

	default:
		if label, ok := ctx.lookupInstruction(val); ok {
			return obj{"Instruction": obj{
				"ty":    SerializeType(val.Type()),
				"index": label,
			}}
		}

		report.Fatalf("unknown value kind: %v", val)
		return nil
	}
}

// serializeValueBlock emits a reference to a basic block used as a value.
// The owning function must be named and must already have a registered
// context.
func serializeValueBlock(block *ir.Block) obj {
	fn := block.Parent
	if fn == nil {
		report.Fatalf("block used as a value has no parent function: %s", block.Ident())
	}
	if fn.Name() == "" {
		report.Fatalf("block used as a value belongs to an unnamed function")
	}

	return obj{
		"func":  fn.Name(),
		"block": functionContext(fn).getBlock(block),
	}
}
