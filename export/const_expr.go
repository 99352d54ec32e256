package export

import (
	"irjson/report"
	"irjson/util"

	"github.com/llir/llvm/ir/constant"
)

// serializeConstExpr lowers a constant expression to the payload of the
// equivalent pseudo-instruction.  Every operand of a constant expression is
// itself a constant, so no labeling context is involved: operands are wrapped
// in the same value envelope the instruction payloads use, through the
// constant path.
func serializeConstExpr(expr constant.Expression) obj {
	switch expr := expr.(type) {
	// unary operators
	case *constant.ExprFNeg:
		return unaryRepr("fneg", constValue(expr.X))

	// binary operators
	case *constant.ExprAdd:
		return binaryRepr("add", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprFAdd:
		return binaryRepr("fadd", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprSub:
		return binaryRepr("sub", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprFSub:
		return binaryRepr("fsub", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprMul:
		return binaryRepr("mul", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprFMul:
		return binaryRepr("fmul", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprUDiv:
		return binaryRepr("udiv", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprSDiv:
		return binaryRepr("sdiv", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprFDiv:
		return binaryRepr("fdiv", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprURem:
		return binaryRepr("urem", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprSRem:
		return binaryRepr("srem", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprFRem:
		return binaryRepr("frem", constValue(expr.X), constValue(expr.Y))

	// bitwise operators
	case *constant.ExprShl:
		return binaryRepr("shl", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprLShr:
		return binaryRepr("lshr", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprAShr:
		return binaryRepr("ashr", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprAnd:
		return binaryRepr("and", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprOr:
		return binaryRepr("or", constValue(expr.X), constValue(expr.Y))
	case *constant.ExprXor:
		return binaryRepr("xor", constValue(expr.X), constValue(expr.Y))

	// comparisons
	case *constant.ExprICmp:
		return compareRepr(intPredicate(expr.Pred), expr.X.Type(), constValue(expr.X), constValue(expr.Y))
	case *constant.ExprFCmp:
		return compareRepr(floatPredicate(expr.Pred), expr.X.Type(), constValue(expr.X), constValue(expr.Y))

	// casts
	case *constant.ExprTrunc:
		return castRepr("trunc", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprZExt:
		return castRepr("zext", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprSExt:
		return castRepr("sext", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprFPTrunc:
		return castRepr("fp_trunc", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprFPExt:
		return castRepr("fp_ext", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprFPToUI:
		return castRepr("fp_to_ui", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprFPToSI:
		return castRepr("fp_to_si", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprUIToFP:
		return castRepr("ui_to_fp", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprSIToFP:
		return castRepr("si_to_fp", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprPtrToInt:
		return castRepr("ptr_to_int", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprIntToPtr:
		return castRepr("int_to_ptr", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprBitCast:
		return castRepr("bitcast", expr.From.Type(), expr.To, constValue(expr.From))
	case *constant.ExprAddrSpaceCast:
		return castRepr("address_space_cast", expr.From.Type(), expr.To, constValue(expr.From))

	// pointer arithmetic
	case *constant.ExprGetElementPtr:
		return gepRepr(
			expr.ElemType,
			expr.Type(),
			constValue(expr.Src),
			util.Map(expr.Indices, constValue),
		)

	// choice
	case *constant.ExprSelect:
		return obj{"ITE": obj{
			"cond":       constValue(expr.Cond),
			"then_value": constValue(expr.X),
			"else_value": constValue(expr.Y),
		}}

	// vector operations
	case *constant.ExprExtractElement:
		return obj{"GetElement": obj{
			"vec_ty": SerializeType(expr.X.Type()),
			"vector": constValue(expr.X),
			"slot":   constValue(expr.Index),
		}}
	case *constant.ExprInsertElement:
		return obj{"SetElement": obj{
			"vector": constValue(expr.X),
			"value":  constValue(expr.Elem),
			"slot":   constValue(expr.Index),
		}}
	case *constant.ExprShuffleVector:
		return obj{"ShuffleVector": obj{
			"lhs":  constValue(expr.X),
			"rhs":  constValue(expr.Y),
			"mask": shuffleMask(expr.Mask),
		}}

	default:
		report.Fatalf("unknown constant expression: %v", expr)
		return nil
	}
}

// constValue wraps a constant operand of a constant expression in the value
// envelope the instruction payloads expect.
func constValue(c constant.Constant) obj {
	return obj{"Constant": SerializeConstant(c)}
}
